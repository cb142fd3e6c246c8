package paper

import (
	"regexp"
	"strings"

	"paper-cloud/internal/model"

	"github.com/dlclark/regexp2"
)

// 机构信息：OCR输出里作者与机构之间常用<br>分隔
var affiliationRe = regexp2.MustCompile(`<br>(.*?)(?=\n\n|\n####)`, regexp2.None)

var doiRe = regexp.MustCompile(`(?i)doi[:\s]+([^\s]+)`)

// ExtractMetadata 提取作者、机构、关键词和DOI。
// 作者启发式：标题之后、Abstract之前的文本，按<br>或逗号切分。
// 出版日期和期刊字段保留占位，OCR的markdown里一般拿不到。
func (p *Parser) ExtractMetadata(ocr *model.OCRResult) model.PaperMetadata {
	metadata := model.PaperMetadata{
		Authors:      []string{},
		Affiliations: []string{},
		Keywords:     []string{},
	}
	if ocr == nil || len(ocr.Pages) == 0 {
		return metadata
	}

	markdown := ocr.Pages[0].Markdown

	// 作者
	title := p.ExtractTitle(ocr)
	if title != TitleNotFound {
		if idx := strings.Index(markdown, title); idx != -1 {
			afterTitle := markdown[idx+len(title):]
			abstractIdx := strings.Index(strings.ToLower(afterTitle), "abstract")
			if abstractIdx != -1 {
				authorSection := strings.TrimSpace(afterTitle[:abstractIdx])
				for _, line := range strings.Split(authorSection, "\n") {
					switch {
					case strings.Contains(line, "<br>"):
						for _, author := range strings.Split(line, "<br>") {
							if author = strings.TrimSpace(author); author != "" && !strings.HasPrefix(author, "#") {
								metadata.Authors = append(metadata.Authors, author)
							}
						}
					case strings.Contains(line, ",") && !strings.HasPrefix(line, "http") && !strings.HasPrefix(line, "www"):
						for _, author := range strings.Split(line, ",") {
							if author = strings.TrimSpace(author); author != "" && !strings.HasPrefix(author, "#") {
								metadata.Authors = append(metadata.Authors, author)
							}
						}
					}
				}
			}
		}
	}

	// 机构
	if m, err := affiliationRe.FindStringMatch(markdown); err == nil && m != nil {
		if affiliation := strings.TrimSpace(m.GroupByNumber(1).String()); affiliation != "" {
			metadata.Affiliations = append(metadata.Affiliations, affiliation)
		}
	}

	// 关键词：keywords行冒号之后按逗号切分
	if idx := strings.Index(strings.ToLower(markdown), "keywords"); idx != -1 {
		keywordsLine := markdown[idx:]
		if nl := strings.Index(keywordsLine, "\n"); nl != -1 {
			keywordsLine = keywordsLine[:nl]
		}
		if colon := strings.Index(keywordsLine, ":"); colon != -1 {
			for _, kw := range strings.Split(keywordsLine[colon+1:], ",") {
				if kw = strings.TrimSpace(kw); kw != "" {
					metadata.Keywords = append(metadata.Keywords, kw)
				}
			}
		}
	}

	// DOI
	if m := doiRe.FindStringSubmatch(markdown); m != nil {
		metadata.DOI = m[1]
	}

	return metadata
}
