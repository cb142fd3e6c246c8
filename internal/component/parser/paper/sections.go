package paper

import (
	"regexp"
	"strings"

	"paper-cloud/internal/model"
)

// 章节标题：markdown的一二级标题，或"1. Introduction"这类编号标题
var sectionHeaderRe = regexp.MustCompile(`(?:^|\n)(?:#{1,2}\s+|(?:\d+\.)\s+)([^\n]+)(?:\n|$)`)

// 去掉章节内容开头的标题行
var sectionTitleLineRe = regexp.MustCompile(`^(?:#{1,2}\s+|(?:\d+\.)\s+)[^\n]+(?:\n|$)`)

// 行内公式$...$与独立公式$$...$$
var formulaRe = regexp.MustCompile(`(?s)\$\$(.*?)\$\$|\$(.*?)\$`)

// ExtractSections 按标题切分章节，每个章节带段落文本、图片和公式。
// 图片归属用启发式判断：图片ID字面量出现在章节内容中即认为属于该章节。
func (p *Parser) ExtractSections(ocr *model.OCRResult) []model.PaperSection {
	sections := []model.PaperSection{}
	if ocr == nil || len(ocr.Pages) == 0 {
		return sections
	}

	markdown := fullMarkdown(ocr)

	matches := sectionHeaderRe.FindAllStringSubmatchIndex(markdown, -1)

	// 没有识别出任何标题时，整个文档作为一个章节
	if len(matches) == 0 {
		section := model.PaperSection{
			Title:    "Document",
			Text:     []string{strings.TrimSpace(markdown)},
			Images:   []model.SectionImage{},
			Formulas: []string{},
		}
		for _, page := range ocr.Pages {
			for _, img := range page.Images {
				section.Images = append(section.Images, toSectionImage(page.Index, img))
			}
		}
		return append(sections, section)
	}

	for i, m := range matches {
		title := strings.TrimSpace(markdown[m[2]:m[3]])
		start := m[0]
		end := len(markdown)
		if i < len(matches)-1 {
			end = matches[i+1][0]
		}
		content := strings.TrimSpace(markdown[start:end])

		// 去掉内容开头的标题行
		if loc := sectionTitleLineRe.FindStringIndex(content); loc != nil {
			content = content[loc[1]:]
		}

		// 提取公式
		formulas := []string{}
		for _, fm := range formulaRe.FindAllStringSubmatch(content, -1) {
			formula := fm[1]
			if formula == "" {
				formula = fm[2]
			}
			if formula != "" {
				formulas = append(formulas, strings.TrimSpace(formula))
			}
		}

		// 正文中公式替换为占位符后再按段落切分
		cleanText := formulaRe.ReplaceAllString(content, " FORMULA ")
		text := []string{}
		for _, para := range strings.Split(cleanText, "\n\n") {
			if para = strings.TrimSpace(para); para != "" {
				text = append(text, para)
			}
		}

		section := model.PaperSection{
			Title:    title,
			Text:     text,
			Images:   []model.SectionImage{},
			Formulas: formulas,
		}

		// 图片ID出现在章节内容中则认为属于该章节，按页序遍历保证输出顺序稳定
		for _, page := range ocr.Pages {
			for _, img := range page.Images {
				if img.ID != "" && strings.Contains(content, img.ID) {
					section.Images = append(section.Images, toSectionImage(page.Index, img))
				}
			}
		}

		sections = append(sections, section)
	}

	return sections
}

func toSectionImage(pageIdx int, img model.OCRImage) model.SectionImage {
	return model.SectionImage{
		Page:   pageIdx,
		ID:     img.ID,
		Base64: img.ImageBase64,
		Coordinates: model.ImageCoordinates{
			TopLeftX:     img.TopLeftX,
			TopLeftY:     img.TopLeftY,
			BottomRightX: img.BottomRightX,
			BottomRightY: img.BottomRightY,
		},
	}
}
