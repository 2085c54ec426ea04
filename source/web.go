package source

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gocolly/colly"
	"github.com/tealeg/xlsx/v3"

	"github.com/notaneet/raspbot/model"
)

// WebSource источник со страницы учебного заведения: находим на странице
// ссылку на xlsx с расписанием, скачиваем и разбираем книгу.
type WebSource struct {
	PageURL string
}

var xlsxLinkSelector = "a[href]"

func (s WebSource) Load() (*model.Document, error) {
	if s.PageURL == "" {
		return nil, fmt.Errorf("адрес страницы с расписанием не задан")
	}

	c := colly.NewCollector()

	var fileURL string
	c.OnHTML(xlsxLinkSelector, func(e *colly.HTMLElement) {
		if fileURL == "" && strings.HasSuffix(e.Attr("href"), ".xlsx") {
			fileURL = e.Request.AbsoluteURL(e.Attr("href"))
		}
	})

	if err := c.Visit(s.PageURL); err != nil {
		return nil, err
	}

	if fileURL == "" {
		return nil, fmt.Errorf("на странице %s нет ссылки на xlsx", s.PageURL)
	}

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	wb, err := xlsx.OpenBinary(b)
	if err != nil {
		return nil, err
	}

	return parseWB(wb)
}
