package model

import (
	"hash/fnv"
	"strings"
)

// CategoryNeutral is the display category for cells without a usable worker
// name. The UI renders it as the muted default style.
const CategoryNeutral = "neutral"

var workerCategories = []string{"info", "success", "warning", "error"}

// WorkerCategory maps a worker name to one of a fixed set of display
// categories. The mapping is derived from a hash of the name, so it is stable
// across sessions and covers workers that were never configured anywhere.
func WorkerCategory(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return CategoryNeutral
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return workerCategories[int(h.Sum32())%len(workerCategories)]
}
