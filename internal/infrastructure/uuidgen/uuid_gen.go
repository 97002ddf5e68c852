package uuidgen

import (
	"github.com/google/uuid"

	"github.com/mapmark/pinpoint/internal/domain/contract"
)

// Generator produces random (v4) string identifiers used as document IDs.
type Generator struct{}

func NewGenerator() contract.IUUIDGenerator {
	return &Generator{}
}

func (g *Generator) NewUUID() string {
	return uuid.NewString()
}

var _ contract.IUUIDGenerator = (*Generator)(nil)
