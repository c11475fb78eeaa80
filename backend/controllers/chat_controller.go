package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"project/backend/config"
	"project/backend/middleware"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
)

const chatRequestTimeout = 45 * time.Second

type ChatController struct {
	Cfg    *config.Config
	Client *http.Client
	Logger *log.Logger
}

func NewChatController(cfg *config.Config, logger *log.Logger) *ChatController {
	return &ChatController{
		Cfg:    cfg,
		Client: &http.Client{Timeout: chatRequestTimeout},
		Logger: logger,
	}
}

type chatMessagePart struct {
	Text string `json:"text"`
}

type chatMessage struct {
	Role  string            `json:"role"`
	Parts []chatMessagePart `json:"parts"`
}

type chatInput struct {
	Question string        `json:"question"`
	History  []chatMessage `json:"history"`
}

type geminiRequest struct {
	Contents         []chatMessage          `json:"contents"`
	GenerationConfig map[string]interface{} `json:"generationConfig"`
	SafetySettings   []map[string]string    `json:"safetySettings"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []chatMessagePart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// Chat proxies a student question to the Gemini API, carrying along any
// prior turns the client sends. Upstream failures map to distinct replies
// so the frontend can show something actionable instead of a bare error.
func (cc *ChatController) Chat(c *fiber.Ctx) error {
	if cc.Cfg.GeminiAPIKey == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"reply": "Sorry, the chatbot is currently unavailable (Configuration Error).",
		})
	}

	var input chatInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return utils.BadRequest(c, "Question required")
	}

	contents := make([]chatMessage, 0, len(input.History)+1)
	for _, msg := range input.History {
		if (msg.Role == "user" || msg.Role == "model") && len(msg.Parts) > 0 && msg.Parts[0].Text != "" {
			contents = append(contents, msg)
		}
	}
	contents = append(contents, chatMessage{
		Role:  "user",
		Parts: []chatMessagePart{{Text: question}},
	})

	payload := geminiRequest{
		Contents: contents,
		GenerationConfig: map[string]interface{}{
			"temperature":     0.7,
			"topK":            40,
			"topP":            0.95,
			"maxOutputTokens": 1500,
		},
		SafetySettings: []map[string]string{
			{"category": "HARM_CATEGORY_HARASSMENT", "threshold": "BLOCK_MEDIUM_AND_ABOVE"},
			{"category": "HARM_CATEGORY_HATE_SPEECH", "threshold": "BLOCK_MEDIUM_AND_ABOVE"},
			{"category": "HARM_CATEGORY_SEXUALLY_EXPLICIT", "threshold": "BLOCK_MEDIUM_AND_ABOVE"},
			{"category": "HARM_CATEGORY_DANGEROUS_CONTENT", "threshold": "BLOCK_MEDIUM_AND_ABOVE"},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return utils.InternalServerError(c, "Could not build chat request")
	}

	userID := middleware.CurrentUser(c).ID
	req, err := http.NewRequestWithContext(c.Context(), http.MethodPost,
		cc.Cfg.GeminiAPIURL+"?key="+cc.Cfg.GeminiAPIKey, bytes.NewReader(body))
	if err != nil {
		return utils.InternalServerError(c, "Could not build chat request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := cc.Client.Do(req)
	if err != nil {
		if cc.Logger != nil {
			cc.Logger.Printf("chat request failed for user %s: %v", userID, err)
		}
		reply := "There was a network problem connecting to the AI assistant."
		if errors.Is(err, os.ErrDeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			reply = "The AI assistant took too long to respond. Please try again."
		}
		return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{"reply": reply})
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"reply": "Sorry, I encountered an issue processing the response.",
		})
	}

	if resp.StatusCode != http.StatusOK {
		if cc.Logger != nil {
			cc.Logger.Printf("chat upstream error (%d) for user %s: %s", resp.StatusCode, userID, raw)
		}
		reply := "Sorry, the AI service encountered an error. Please try again later."
		status := fiber.StatusBadGateway
		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			reply = "The chatbot is experiencing high traffic right now. Please try again in a moment."
			status = fiber.StatusTooManyRequests
		case resp.StatusCode >= 500:
			reply = "The AI service is temporarily unavailable. Please try again later."
			status = resp.StatusCode
		}
		return c.Status(status).JSON(fiber.Map{"reply": reply})
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"reply": "Sorry, I encountered an issue processing the response.",
		})
	}

	if len(parsed.Candidates) == 0 {
		reply := "I cannot provide a response due to content restrictions."
		if parsed.PromptFeedback.BlockReason == "SAFETY" {
			reply = "My safety filters prevented generating a response for this topic."
		}
		return c.JSON(fiber.Map{"reply": reply})
	}

	candidate := parsed.Candidates[0]
	if len(candidate.Content.Parts) == 0 {
		return c.JSON(fiber.Map{"reply": "Sorry, I encountered an issue processing the response."})
	}
	reply := candidate.Content.Parts[0].Text

	switch candidate.FinishReason {
	case "", "STOP":
	case "MAX_TOKENS":
		reply += "\n(Note: My response might have been cut short.)"
	case "SAFETY":
		reply = "The generated response was partially blocked due to safety filters."
	case "RECITATION":
		reply += "\n(Note: Response might contain recited content.)"
	}

	return c.JSON(fiber.Map{"reply": strings.TrimSpace(reply)})
}
