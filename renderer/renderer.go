package renderer

import "github.com/ByLCY/capsvg/scene"

// Renderer 将场景输出为最终文件，例如 SVG 或 PDF。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(s *scene.Scene) ([]byte, error)
}
