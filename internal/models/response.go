package models

import (
	"net/http"
	"time"
)

// ResponseModel Base response structure that can be reused
type ResponseModel struct {
	Code        int         `json:"code"`
	CurrentTime int64       `json:"currentTime"`
	Data        interface{} `json:"data"`
	Text        string      `json:"text"`
	Version     int         `json:"version"`
}

// ResponseCurrentTime returns the current time in epoch milliseconds for
// response envelopes.
func ResponseCurrentTime() int64 {
	return time.Now().UnixMilli()
}

// NewOKResponse creates a 200 response envelope around the given data
func NewOKResponse(data interface{}) ResponseModel {
	return ResponseModel{
		Code:        http.StatusOK,
		CurrentTime: ResponseCurrentTime(),
		Data:        data,
		Text:        "OK",
		Version:     2,
	}
}

// NewCreatedResponse creates a 201 response envelope around the given data
func NewCreatedResponse(data interface{}) ResponseModel {
	return ResponseModel{
		Code:        http.StatusCreated,
		CurrentTime: ResponseCurrentTime(),
		Data:        data,
		Text:        "Created",
		Version:     2,
	}
}

// EntryData wraps a single entry for entry-style endpoints
type EntryData struct {
	Entry interface{} `json:"entry"`
}

// NewEntryResponse creates a 200 envelope around a single entry
func NewEntryResponse(entry interface{}) ResponseModel {
	return NewOKResponse(EntryData{Entry: entry})
}

// ListData wraps a list plus its pagination block for list-style endpoints
type ListData struct {
	List       interface{} `json:"list"`
	Pagination *Pagination `json:"pagination,omitempty"`
	OutOfRange bool        `json:"outOfRange"`
}

// NewListResponse creates a 200 envelope around a list of results
func NewListResponse(list interface{}, pagination *Pagination) ResponseModel {
	outOfRange := pagination != nil && pagination.Page > pagination.TotalPages
	return NewOKResponse(ListData{
		List:       list,
		Pagination: pagination,
		OutOfRange: outOfRange,
	})
}
