package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewBatchID gera um identificador curto para lotes de ingestão (uploads de
// planilha, recargas da tabela).
func NewBatchID() (string, error) {
	return gonanoid.Generate(characters, 8)
}
