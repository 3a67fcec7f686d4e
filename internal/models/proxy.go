package models

import "encoding/json"

// CanvasProxyRequest is the body of POST /canvas/proxy
type CanvasProxyRequest struct {
	CanvasURL   string `json:"canvasUrl"`
	AccessToken string `json:"accessToken"`
	Endpoint    string `json:"endpoint"`
}

// CanvasProxyResponse mirrors the upstream status even when OK is false
type CanvasProxyResponse struct {
	Data   json.RawMessage `json:"data"`
	Status int             `json:"status"`
	OK     bool            `json:"ok"`
	Error  *string         `json:"error"`
}

type Note struct {
	Content string `json:"content"`
	Subject string `json:"subject,omitempty"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type AnalyzeNotesRequest struct {
	Notes          []Note `json:"notes"`
	Subject        string `json:"subject"`
	PromptTemplate string `json:"promptTemplate"`
}

type AnalyzeNotesResponse struct {
	OK     bool   `json:"ok"`
	Result string `json:"result"`
}

type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

type ChatResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

type AnalyzeImageRequest struct {
	ImageURL   string `json:"imageUrl"`
	PromptText string `json:"promptText"`
}

type AnalyzeImageResponse struct {
	OK   bool   `json:"ok"`
	Text string `json:"text"`
}

type GenerateOutlineRequest struct {
	Notes   []Note `json:"notes"`
	Subject string `json:"subject"`
}

type GenerateOutlineResponse struct {
	OK      bool   `json:"ok"`
	Outline string `json:"outline"`
}

type FindConnectionsRequest struct {
	Notes []Note `json:"notes"`
}

type FindConnectionsResponse struct {
	OK          bool     `json:"ok"`
	Connections []string `json:"connections"`
}

type GenerateFlashcardsRequest struct {
	Content string `json:"content"`
}

type GenerateFlashcardsResponse struct {
	OK         bool   `json:"ok"`
	Flashcards string `json:"flashcards"`
}
