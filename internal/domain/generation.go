package domain

// GenParams are the generation settings for one completion call. They are
// fixed per intent and never user-controlled.
type GenParams struct {
	MaxTokens   int
	Temperature float32
}
