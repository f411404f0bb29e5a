package cgrates

type envelope struct {
	Method string   `json:"method"`
	Params []Params `json:"params"`
	ID     any      `json:"id,omitempty"`
}

// newEnvelope params всегда один элемент, id только если задан.
func newEnvelope(op Operation, params Params, id any) envelope {
	env := envelope{
		Method: op.Method,
		Params: []Params{params},
	}

	if !isFalsy(id) {
		env.ID = id
	}

	return env
}
