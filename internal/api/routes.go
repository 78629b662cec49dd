// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

// Package api wraps every backend endpoint in a typed call over the request
// pipeline.
package api

import (
	"net/http"
	"net/url"
	"strings"
)

// Backend routes. Placeholders in braces are filled per call.
const (
	RouteLogin = "/login"

	RouteUserList   = "/user/list"
	RouteUserAdd    = "/user/add"
	RouteUserUpdate = "/user/upt"
	RouteUserDelete = "/user/del/{id}"

	RouteTaskAdd     = "/task/add"
	RouteTaskDelete  = "/task/del/{id}"
	RouteTaskUpdate  = "/task/upt"
	RouteTaskList    = "/task/list"
	RouteTaskRun     = "/task/run"
	RouteTaskCancel  = "/task/cancel/{id}"
	RouteTaskState   = "/task/state/{name}"
	RouteTaskDisable = "/task/disable/{name}"
)

// Endpoint pairs a method with a route.
type Endpoint struct {
	Method string
	Route  string
}

// Endpoints lists the whole backend surface the client consumes.
var Endpoints = []Endpoint{
	{http.MethodPost, RouteLogin},
	{http.MethodGet, RouteUserList},
	{http.MethodPost, RouteUserAdd},
	{http.MethodPut, RouteUserUpdate},
	{http.MethodDelete, RouteUserDelete},
	{http.MethodPost, RouteTaskAdd},
	{http.MethodDelete, RouteTaskDelete},
	{http.MethodPut, RouteTaskUpdate},
	{http.MethodGet, RouteTaskList},
	{http.MethodPost, RouteTaskRun},
	{http.MethodPost, RouteTaskCancel},
	{http.MethodGet, RouteTaskState},
	{http.MethodPost, RouteTaskDisable},
}

// expand replaces the single {placeholder} in route with the escaped value.
func expand(route, value string) string {
	open := strings.IndexByte(route, '{')
	end := strings.IndexByte(route, '}')
	if open < 0 || end < open {
		return route
	}
	return route[:open] + url.PathEscape(value) + route[end+1:]
}
