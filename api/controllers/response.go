package controllers

import (
	"net/http"

	"github.com/go-chi/render"
)

// APIResponse 统一API响应结构
type APIResponse struct {
	Status int         `json:"status" example:"0"`
	Msg    string      `json:"msg" example:"操作成功"`
	Data   interface{} `json:"data,omitempty"`
}

// renderSuccess 输出成功响应
func renderSuccess(w http.ResponseWriter, r *http.Request, data interface{}) {
	render.JSON(w, r, APIResponse{
		Status: 0,
		Msg:    "操作成功",
		Data:   data,
	})
}

// renderError 输出错误响应
func renderError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	render.Status(r, code)
	render.JSON(w, r, APIResponse{
		Status: code,
		Msg:    msg,
	})
}
