package walker

import (
	"fmt"
	"strings"

	"github.com/joshuapare/threadkit/pkg/types"
)

// idListError formats a short list of offending ids.
func idListError(ids []types.ID) error {
	const maxShown = 8

	parts := make([]string, 0, min(len(ids), maxShown))
	for i, id := range ids {
		if i == maxShown {
			parts = append(parts, fmt.Sprintf("... (%d more)", len(ids)-maxShown))
			break
		}
		parts = append(parts, fmt.Sprintf("%d", id))
	}
	return fmt.Errorf("ids %s", strings.Join(parts, ", "))
}
