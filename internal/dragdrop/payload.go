package dragdrop

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/graphdeck/internal/domain"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrEmptyPayload indicates the transfer slot was missing, blank, null, or {}.
	ErrEmptyPayload = errors.New("empty drag payload")

	// ErrMalformedPayload indicates the slot did not hold a valid payload.
	ErrMalformedPayload = errors.New("malformed drag payload")
)

var validate = validator.New()

// Payload is the node template serialized at drag start. Every field is
// optional on decode.
type Payload struct {
	Kind        domain.NodeKind `json:"type,omitempty" validate:"omitempty,oneof=input default output"`
	Name        string          `json:"name"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Notes       string          `json:"notes"`
	Category    string          `json:"category,omitempty"`
}

// IsZero reports whether the payload carries nothing at all.
func (p Payload) IsZero() bool {
	return p == Payload{}
}

// KindOrDefault returns the payload kind, falling back to "default".
func (p Payload) KindOrDefault() domain.NodeKind {
	if p.Kind == "" {
		return domain.KindDefault
	}
	return p.Kind
}

// Label is the node label a drop of this template produces.
func (p Payload) Label() string {
	return domain.CoalesceStr(p.Name, p.KindOrDefault().FallbackLabel())
}

// Write serializes p into t and marks the drag as a move.
func Write(t *Transfer, p Payload) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding drag payload: %w", err)
	}
	t.SetData(Format, string(data))
	t.EffectAllowed = EffectMove
	return nil
}

// Read decodes the payload carried by t. The kind is read from "type" and,
// when that is absent, from "kind".
func Read(t *Transfer) (Payload, error) {
	raw := strings.TrimSpace(t.GetData(Format))
	if raw == "" || raw == "null" {
		return Payload{}, ErrEmptyPayload
	}

	var wire struct {
		Payload
		AltKind domain.NodeKind `json:"kind"`
	}
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	p := wire.Payload
	if p.Kind == "" {
		p.Kind = wire.AltKind
	}
	if p.IsZero() {
		return Payload{}, ErrEmptyPayload
	}
	if err := validate.Struct(p); err != nil {
		return Payload{}, fmt.Errorf("%w: %s", ErrMalformedPayload, describeValidation(err))
	}
	return p, nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(msgs, "; ")
}
