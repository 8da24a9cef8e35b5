package layout

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON 将排好的标签输出为 JSON，便于调试折行与定位。
func WriteDebugJSON(labels []*Label, path string) error {
	if labels == nil {
		labels = []*Label{}
	}
	data, err := json.MarshalIndent(labels, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
