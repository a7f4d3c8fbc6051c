// Package dto содержит объекты передачи данных ConnectX API.
package dto

import (
	"net/url"
	"strconv"
)

// Page представляет страницу списочного ответа бэкенда.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// ListParams содержит общие параметры списочных запросов: пагинацию,
// поиск, фильтры и сортировку.
type ListParams struct {
	Page     int
	PageSize int
	Search   string
	Status   string
	Sort     string
	DateFrom string
	DateTo   string
}

// Values кодирует параметры в строку запроса. Нулевые значения опускаются.
func (p ListParams) Values() url.Values {
	values := url.Values{}
	if p.Page > 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if p.Search != "" {
		values.Set("search", p.Search)
	}
	if p.Status != "" {
		values.Set("status", p.Status)
	}
	if p.Sort != "" {
		values.Set("sort", p.Sort)
	}
	if p.DateFrom != "" {
		values.Set("date_from", p.DateFrom)
	}
	if p.DateTo != "" {
		values.Set("date_to", p.DateTo)
	}
	return values
}
