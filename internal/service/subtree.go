package service

import (
	"context"
	"fmt"

	"pixelbin/internal/domain/repositories"
)

// collectSubtreeIDs returns rootID plus the id of every folder
// transitively reachable below it, restricted to one owner. The caller
// must have already verified that rootID exists.
//
// The user's folders are fetched in a single query and expanded
// breadth-first over an in-memory child index, so the cost is one store
// round-trip regardless of tree depth. A seen set guards against
// revisits, so even a corrupted cyclic parent chain cannot loop.
func collectSubtreeIDs(ctx context.Context, folderRepo repositories.FolderRepository, userID, rootID string) ([]string, error) {
	all, err := folderRepo.GetAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("collect subtree: %w", err)
	}

	childrenByParent := make(map[string][]string)
	for _, f := range all {
		if f.ParentID != nil {
			childrenByParent[*f.ParentID] = append(childrenByParent[*f.ParentID], f.ID)
		}
	}

	ids := []string{rootID}
	seen := map[string]bool{rootID: true}

	for frontier := []string{rootID}; len(frontier) > 0; {
		next := frontier[:0:0]
		for _, id := range frontier {
			for _, childID := range childrenByParent[id] {
				if seen[childID] {
					continue
				}
				seen[childID] = true
				ids = append(ids, childID)
				next = append(next, childID)
			}
		}
		frontier = next
	}

	return ids, nil
}
