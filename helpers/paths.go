package helpers

import (
	"fmt"
	"strings"
)

// NormalizePurePath 把 POSIX 路径解释为相对 base 的路径（path 为绝对路径时忽略 base），
// 折叠 "." 与 ".."，返回不带前导 "/" 的结果；越过根的 ".." 被丢弃，空结果为 "."。
func NormalizePurePath(path, base string) string {
	full := path
	if !strings.HasPrefix(path, "/") {
		full = base + "/" + path
	}
	var parts []string
	for _, p := range strings.Split(full, "/") {
		switch p {
		case "", ".":
		case "..":
			if len(parts) > 0 {
				parts = parts[:len(parts)-1]
			}
		default:
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "."
	}
	return strings.Join(parts, "/")
}

// FragmentLink 把当前片段文件与 href 组合成绝对链接。
// href 可以是 "#id"、裸 id，或带类型前缀的 "type path/to/file#id"。
func FragmentLink(curFrag, href string) string {
	if strings.HasPrefix(href, "#") {
		return curFrag + href
	}
	if !strings.Contains(href, "#") {
		return curFrag + "#" + href
	}
	if fields := strings.Fields(href); len(fields) > 0 {
		href = fields[len(fields)-1]
	}
	dir := dirname(curFrag)
	for strings.HasPrefix(href, "../") {
		dir = dirname(dir)
		href = href[3:]
	}
	return joinPath(dir, href)
}

// dirname strips the last path element like POSIX dirname, returning "" for bare names.
func dirname(p string) string {
	i := strings.LastIndex(p, "/") + 1
	head := p[:i]
	if head != "" && strings.Trim(head, "/") != "" {
		head = strings.TrimRight(head, "/")
	}
	return head
}

func joinPath(dir, name string) string {
	if dir == "" || strings.HasPrefix(name, "/") {
		return name
	}
	if strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + "/" + name
}

// ResolveNamespace 把 "prefix:tag" 解析为 Clark 记法 "{uri}tag"；没有前缀时原样返回。
func ResolveNamespace(tag string, namespaces map[string]string) (string, error) {
	prefix, local, ok := strings.Cut(tag, ":")
	if !ok {
		return tag, nil
	}
	if strings.Contains(local, ":") {
		return "", fmt.Errorf("非法的限定名 %q", tag)
	}
	uri, found := namespaces[prefix]
	if !found {
		return "", fmt.Errorf("未知的命名空间前缀 %q", prefix)
	}
	return "{" + uri + "}" + local, nil
}
