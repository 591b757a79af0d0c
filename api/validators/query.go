package validators

import (
	"net/http"

	"github.com/google/uuid"

	pkgerrors "github.com/ujenzihq/ujenzipay-backend/pkg/errors"
	"github.com/ujenzihq/ujenzipay-backend/pkg/enums"
)

// TabFromQuery reads and validates the `tab` query parameter.
func TabFromQuery(r *http.Request) (enums.TabFilter, error) {
	tab, err := enums.ParseTabFilter(r.URL.Query().Get("tab"))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tab")
	}
	return tab, nil
}

// GroupKeyFromQuery reads and validates the `group_by` query parameter.
func GroupKeyFromQuery(r *http.Request) (enums.GroupKey, error) {
	key, err := enums.ParseGroupKey(r.URL.Query().Get("group_by"))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid group key")
	}
	return key, nil
}

// UUIDFromPath parses a path parameter as a UUID.
func UUIDFromPath(raw, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return id, nil
}
