// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

// Package chat implements VisionBot, the site's pre-sales assistant.
// It talks to Gemini through its OpenAI-compatible endpoint, so the
// same client works against any compatible provider.
package chat

import (
	"context"
	"log/slog"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/ivision/showcase-go/internal/model"
)

// systemPrompt frames every conversation. The assistant qualifies
// leads in French and never quotes fixed prices.
const systemPrompt = `Tu es "VisionBot", l'assistant virtuel expert de l'agence "iVision Agency".
Ton rôle est d'aider les potentiels clients à définir leurs besoins avant de contacter l'équipe humaine.

Services de l'agence :
1. Production Vidéo (Reels, TikTok, Publicités TV/Web)
2. Photographie (Produit, Mode, Corporate)
3. Design Graphique (Branding, UI/UX, Social Media)
4. Publicité Payante (Facebook Ads, Google Ads, TikTok Ads)

Ton ton doit être : Professionnel, Créatif, Concis et Engageant.
Ne donne pas de prix fixes, dis que cela dépend du projet.
Si l'utilisateur demande un devis, pose des questions qualifiantes (budget, délais, objectifs).
Réponds toujours en Français.`

// Canned replies. The assistant never surfaces raw errors to
// visitors; it degrades to one of these.
const (
	ReplyDisabled = "L'assistant virtuel est momentanément indisponible (Configuration requise). Veuillez nous envoyer un email via le formulaire."
	ReplyEmpty    = "Désolé, je n'ai pas pu générer une réponse pour le moment."
	ReplyError    = "Je rencontre actuellement des difficultés techniques. Veuillez réessayer plus tard ou contacter l'agence directement."
)

// Message is one prior turn of the conversation passed back to the
// model for context.
type Message struct {
	Role string // model.ChatRoleUser or model.ChatRoleModel
	Text string
}

// Options configure the assistant.
type Options struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Assistant generates chat replies. A zero APIKey produces a disabled
// assistant that answers with ReplyDisabled.
type Assistant struct {
	client  openai.Client
	model   string
	enabled bool
	logger  *slog.Logger
}

// NewAssistant builds the assistant from options.
func NewAssistant(opts Options, logger *slog.Logger) *Assistant {
	a := &Assistant{
		model:   opts.Model,
		enabled: opts.APIKey != "",
		logger:  logger,
	}
	if !a.enabled {
		logger.Warn("chat assistant disabled, no API key configured",
			"category", model.EventCategoryChat)
		return a
	}

	clientOpts := []option.RequestOption{option.WithAPIKey(opts.APIKey)}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(opts.BaseURL))
	}
	a.client = openai.NewClient(clientOpts...)
	return a
}

// Enabled reports whether the assistant can reach a model.
func (a *Assistant) Enabled() bool {
	return a.enabled
}

// Reply generates the assistant's answer to userMessage given the
// prior conversation. It never returns an error; failures degrade to
// a canned French reply so the chat widget always has something to
// show.
func (a *Assistant) Reply(ctx context.Context, history []Message, userMessage string) string {
	if !a.enabled {
		return ReplyDisabled
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	messages = append(messages, openai.SystemMessage(systemPrompt))
	for _, m := range history {
		if m.Role == model.ChatRoleModel {
			messages = append(messages, openai.AssistantMessage(m.Text))
		} else {
			messages = append(messages, openai.UserMessage(m.Text))
		}
	}
	messages = append(messages, openai.UserMessage(userMessage))

	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(a.model),
		Messages:    messages,
		Temperature: openai.Float(0.7),
	})
	if err != nil {
		a.logger.Warn("chat completion failed",
			"category", model.EventCategoryChat, "error", err.Error())
		return ReplyError
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return ReplyEmpty
	}
	return resp.Choices[0].Message.Content
}
