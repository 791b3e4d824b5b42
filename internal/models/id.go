package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IDLength is the length of a hex document id.
const IDLength = 24

func NewID() string {
	return primitive.NewObjectID().Hex()
}

func IsID(s string) bool {
	if len(s) != IDLength {
		return false
	}
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}

func NormalizeID(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
