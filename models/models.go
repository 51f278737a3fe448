package models

// EvaluateRequest - запрос на вычисление выражения
type EvaluateRequest struct {
	Input string `json:"input"`
}

// PressRequest - нажатие клавиши калькулятора
type PressRequest struct {
	Key string `json:"key"`
}

// Result is the common reply shape. Display is set for keypad replies,
// Error and Kind only on failure.
type Result struct {
	Result  string `json:"result,omitempty"`
	Display string `json:"display,omitempty"`
	Error   string `json:"error,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

// SocketMessage is one client frame on the WebSocket keypad: either a key
// press or a whole expression.
type SocketMessage struct {
	Key   string `json:"key,omitempty"`
	Input string `json:"input,omitempty"`
}

type MemoryState struct {
	Value  float64 `json:"value"`
	Stored bool    `json:"stored"`
}

type LoginRequest struct {
	Username string `json:"username"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type ClearResponse struct {
	Cleared int `json:"cleared"`
}
