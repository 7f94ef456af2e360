package util

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateObjectKey builds the storage key of an uploaded image, e.g.
// "clubs/<clubId>/logo/<random>".
func GenerateObjectKey(prefix string, ownerId uuid.UUID, kind string) string {
	return fmt.Sprintf("%s/%s/%s/%s", prefix, ownerId, kind, uuid.New())
}

// SplitDomainTags turns "ai, robotics,,ml" into ["ai","robotics","ml"].
func SplitDomainTags(tags string) []string {
	result := []string{}
	for _, tag := range strings.Split(tags, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		result = append(result, tag)
	}
	return result
}

// NormalizeDomainTags trims every tag and joins them back with ", ".
func NormalizeDomainTags(tags string) string {
	return strings.Join(SplitDomainTags(tags), ", ")
}
