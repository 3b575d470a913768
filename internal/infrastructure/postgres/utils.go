package postgres

import (
	"encoding/json"

	"github.com/sethmayank01/gew-erp/internal/domain"
)

// scanDoc deserializa el documento jsonb de una fila en la entidad destino.
func scanDoc(data []byte, dst any) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return domain.NewStorageError("decodificar documento", err)
	}
	return nil
}

// marshalDoc serializa la entidad al documento jsonb.
func marshalDoc(src any) ([]byte, error) {
	data, err := json.Marshal(src)
	if err != nil {
		return nil, domain.NewStorageError("codificar documento", err)
	}
	return data, nil
}
