package claude

type messagesRequest struct {
	Model       string    `json:"model"`
	System      string    `json:"system,omitempty"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float32   `json:"temperature"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// messagesResponse keeps only the text blocks, the model and token usage.
type messagesResponse struct {
	Model   string      `json:"model"`
	Content []textBlock `json:"content"`
	Usage   struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// textBlock is one content block; non-text blocks are skipped by type.
type textBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}
