package assistant

type ChatRequest struct {
	Prompt      string   `json:"prompt" binding:"required"`
	MaxTokens   int      `json:"max_tokens"`
	Temperature *float32 `json:"temperature"`
	TopP        *float32 `json:"top_p"`
}

type MatchResumeRequest struct {
	Prompt         string `json:"prompt" binding:"required"`
	JobDescription string `json:"job_description" binding:"required"`
	Resume         string `json:"resume" binding:"required"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}
