package services

import (
	"fmt"
	"strings"

	"github.com/ScholarStream/scholarship_service/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// parseID validates an identity token before it ever reaches a store filter.
// Malformed IDs land in the same bucket as absent documents so the ID format
// does not leak.
func parseID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("resource: %w", domain.ErrNotFound)
	}
	return id, nil
}
