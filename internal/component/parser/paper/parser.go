/*
论文结构解析器。

输入是OCR接口返回的按页markdown，输出结构化的论文表示
（标题、摘要、章节、参考文献、元数据）。全部基于正则启发式，
没有形式化文法，解析不到时退回默认值而不是报错。
带lookahead的模式用regexp2实现，其余用标准库regexp。
*/

package paper

import (
	"fmt"
	"os"
	"strings"

	"paper-cloud/internal/model"

	"github.com/bytedance/sonic"
	"github.com/dlclark/regexp2"
)

const (
	// TitleNotFound 未解析出标题时的占位值
	TitleNotFound = "Title not found"
	// AbstractNotFound 未解析出摘要时的占位值
	AbstractNotFound = "Abstract not found"
)

// 摘要通常出现在首页，以Abstract标题或####小节形式出现，
// 到连续空行或下一个标题为止
var abstractRe = regexp2.MustCompile(
	`(?:####\s*Abstract|Abstract)(?:\n+|\s+)(.*?)(?=\n\n\n|\n##|\n#)`,
	regexp2.Singleline|regexp2.IgnoreCase)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse 解析OCR结果为论文结构
func (p *Parser) Parse(ocr *model.OCRResult) *model.PaperStructure {
	return &model.PaperStructure{
		Title:      p.ExtractTitle(ocr),
		Abstract:   p.ExtractAbstract(ocr),
		Sections:   p.ExtractSections(ocr),
		References: p.ExtractReferences(ocr),
		Metadata:   p.ExtractMetadata(ocr),
	}
}

// ParseBytes 解析JSON格式的OCR结果
func (p *Parser) ParseBytes(data []byte) (*model.PaperStructure, error) {
	var ocr model.OCRResult
	if err := sonic.Unmarshal(data, &ocr); err != nil {
		return nil, fmt.Errorf("解析OCR结果JSON失败: %w", err)
	}
	return p.Parse(&ocr), nil
}

// ParseFromFile 从缓存的OCR结果文件解析
func (p *Parser) ParseFromFile(path string) (*model.PaperStructure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取OCR结果文件失败: %w", err)
	}
	return p.ParseBytes(data)
}

// ExtractTitle 提取论文标题。
// 优先找首页markdown中以"# "开头的行，找不到就取第一行。
func (p *Parser) ExtractTitle(ocr *model.OCRResult) string {
	if ocr == nil || len(ocr.Pages) == 0 {
		return TitleNotFound
	}

	markdown := ocr.Pages[0].Markdown
	lines := strings.Split(markdown, "\n")
	for _, line := range lines {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}

	// 没有一级标题时，第一行通常就是标题
	if len(lines) > 0 {
		if first := strings.TrimSpace(lines[0]); first != "" {
			return first
		}
	}
	return TitleNotFound
}

// ExtractAbstract 提取摘要，只在首页查找
func (p *Parser) ExtractAbstract(ocr *model.OCRResult) string {
	if ocr == nil || len(ocr.Pages) == 0 {
		return AbstractNotFound
	}

	m, err := abstractRe.FindStringMatch(ocr.Pages[0].Markdown)
	if err != nil || m == nil {
		return AbstractNotFound
	}
	return strings.TrimSpace(m.GroupByNumber(1).String())
}

// fullMarkdown 按原始页序拼接全部页面的markdown
func fullMarkdown(ocr *model.OCRResult) string {
	var sb strings.Builder
	for _, page := range ocr.Pages {
		sb.WriteString(page.Markdown)
		sb.WriteString("\n\n")
	}
	return sb.String()
}
