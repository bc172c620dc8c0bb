package util

import (
	"encoding/json"
	"strings"
)

// 题目选项在数据库中存为一列文本。新写入统一为 JSON 数组；
// 早期导入的数据是 Python 列表字面量（如 ['A', "B"]），读取时仍需兼容。

// EncodeOptions 将选项编码为规范的 JSON 数组文本
func EncodeOptions(options []string) (string, error) {
	b, err := json.Marshal(options)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeOptions 解析选项文本。先按 JSON 解析，失败则按旧的列表字面量解析，
// 全部失败时返回空切片而不是错误，调用方将空结果视为"无选项可渲染"。
func DecodeOptions(text string) []string {
	var options []string
	if err := json.Unmarshal([]byte(text), &options); err == nil {
		return options
	}

	if options, ok := decodeLiteralList(text); ok {
		return options
	}

	return []string{}
}

// decodeLiteralList 解析形如 ['a', "b", 'c', 'd'] 的列表字面量，
// 支持单双引号和反斜杠转义。
func decodeLiteralList(text string) ([]string, bool) {
	s := strings.TrimSpace(text)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, false
	}
	s = s[1 : len(s)-1]

	items := []string{}
	i := 0
	for {
		for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
			i++
		}
		if i >= len(s) {
			break
		}

		quote := s[i]
		if quote != '\'' && quote != '"' {
			return nil, false
		}
		i++

		var sb strings.Builder
		closed := false
		for i < len(s) {
			ch := s[i]
			if ch == '\\' && i+1 < len(s) {
				sb.WriteByte(s[i+1])
				i += 2
				continue
			}
			if ch == quote {
				closed = true
				i++
				break
			}
			sb.WriteByte(ch)
			i++
		}
		if !closed {
			return nil, false
		}
		items = append(items, sb.String())

		for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
			i++
		}
		if i < len(s) {
			if s[i] != ',' {
				return nil, false
			}
			i++
		}
	}

	return items, true
}
