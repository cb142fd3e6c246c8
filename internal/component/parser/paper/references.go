package paper

import (
	"fmt"
	"regexp"
	"strings"

	"paper-cloud/internal/model"

	"github.com/dlclark/regexp2"
)

// References章节：从标题到连续空行、下一个标题或文档结尾
var referencesRe = regexp2.MustCompile(
	`(?:##\s*References|References)(?:\n+|\s+)(.*?)(?=\n\n\n|\n##|\n#|$)`,
	regexp2.Singleline|regexp2.IgnoreCase)

// 单条参考文献：[1]或1.编号开头，到下一条编号或结尾
var referenceEntryRe = regexp2.MustCompile(
	`(?:\[(\d+)\]|\n(\d+)\.)\s+(.*?)(?=\n\[|\n\d+\.|$)`,
	regexp2.Singleline)

// 逐行模式下判断是否是新条目的开头
var referenceLineStartRe = regexp.MustCompile(`^(?:\[\d+\]|\d+\.)`)

// ExtractReferences 提取参考文献列表，每条规范化为"[n] text"。
// 先用编号模式整体匹配，失败时退回逐行累积的方式。
func (p *Parser) ExtractReferences(ocr *model.OCRResult) []string {
	references := []string{}
	if ocr == nil || len(ocr.Pages) == 0 {
		return references
	}

	m, err := referencesRe.FindStringMatch(fullMarkdown(ocr))
	if err != nil || m == nil {
		return references
	}
	refContent := strings.TrimSpace(m.GroupByNumber(1).String())

	// 按编号模式提取
	entry, err := referenceEntryRe.FindStringMatch("\n" + refContent)
	for err == nil && entry != nil {
		num := entry.GroupByNumber(1).String()
		if num == "" {
			num = entry.GroupByNumber(2).String()
		}
		text := strings.TrimSpace(entry.GroupByNumber(3).String())
		if text != "" {
			references = append(references, fmt.Sprintf("[%s] %s", num, text))
		}
		entry, err = referenceEntryRe.FindNextMatch(entry)
	}

	if len(references) > 0 {
		return references
	}

	// 编号模式没匹配到，逐行累积：编号行开启新条目，其余行并入当前条目
	lines := strings.Split(refContent, "\n")
	current := ""
	for i, line := range lines {
		if i == 0 {
			continue // 第一行可能是章节标题残留
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if referenceLineStartRe.MatchString(line) {
			if current != "" {
				references = append(references, strings.TrimSpace(current))
			}
			current = line
		} else if current != "" {
			current += " " + line
		}
	}
	if current != "" {
		references = append(references, strings.TrimSpace(current))
	}

	return references
}
