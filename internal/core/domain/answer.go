package domain

// FallbackAnswer is returned verbatim when no relevant recipe exists for a
// question. The text matches the instruction given to the language model, so
// the user sees the same message whether the empty-context short circuit or
// the model itself produced it.
const FallbackAnswer = "Üzgünüm, bu konuda uygun bir tarif bulamadım. Başka bir şey denemek ister misiniz?"

// Answer is the final response for one question.
type Answer struct {
	// Text is the user-facing answer.
	Text string

	// Grounded reports whether retrieved context was supplied to the
	// language model. False means the fixed fallback was returned
	// without a generation call.
	Grounded bool

	// Queries are the expanded retrieval queries used for this answer,
	// original question first.
	Queries []string

	// Retrieved is the number of distinct documents assembled into the
	// grounding context.
	Retrieved int
}
