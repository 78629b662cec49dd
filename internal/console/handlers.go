// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package console

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/gookins-admin/internal/api"
	"github.com/tomtom215/gookins-admin/internal/router"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, response{OK: true, Data: map[string]any{
		"status":    "ok",
		"logged_in": s.tokens.HasToken(),
	}})
}

type loginState struct {
	LoggedIn bool           `json:"logged_in"`
	Token    *api.TokenInfo `json:"token,omitempty"`
}

func (s *Server) state() loginState {
	st := loginState{LoggedIn: s.tokens.HasToken()}
	if st.LoggedIn {
		if info, err := api.InspectToken(s.tokens.Token(), s.now()); err == nil {
			st.Token = &info
		}
	}
	return st
}

func (s *Server) loginView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, response{OK: true, View: router.PathLogin, Data: s.state()})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var form api.LoginForm
	if err := decodeBody(r, &form); err != nil {
		writeError(w, r, err)
		return
	}
	reply, err := s.session.Login(r.Context(), form)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !reply.OK() {
		writeJSON(w, r, http.StatusOK, response{View: router.PathLogin, Envelope: reply.Envelope})
		return
	}
	writeJSON(w, r, http.StatusOK, response{OK: true, View: router.PathLogin, Data: s.state()})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Logout(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, response{OK: true, View: router.PathLogin, Data: s.state()})
}

type menuItem struct {
	Path  string `json:"path"`
	Name  string `json:"name"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	var menu []menuItem
	for _, route := range s.router.Routes() {
		for _, child := range route.Children {
			m, ok := s.router.Resolve(child.Path)
			if !ok {
				continue
			}
			menu = append(menu, menuItem{Path: m.Path, Name: child.Name, Title: child.Meta.Title, Icon: child.Meta.Icon})
		}
	}
	writeJSON(w, r, http.StatusOK, response{OK: true, Data: map[string]any{
		"menu":    menu,
		"session": s.state(),
	}})
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	reply, err := s.api.Users.List(r.Context())
	writeReply(w, r, reply, err)
}

func (s *Server) addUser(w http.ResponseWriter, r *http.Request) {
	var form api.UserForm
	if err := decodeBody(r, &form); err != nil {
		writeError(w, r, err)
		return
	}
	reply, err := s.api.Users.Add(r.Context(), form)
	writeReply(w, r, reply, err)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	var form api.UserForm
	if err := decodeBody(r, &form); err != nil {
		writeError(w, r, err)
		return
	}
	reply, err := s.api.Users.Update(r.Context(), form)
	writeReply(w, r, reply, err)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	reply, err := s.api.Users.Delete(r.Context(), pathRef(r))
	writeReply(w, r, reply, err)
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	reply, err := s.api.Tasks.List(r.Context())
	writeReply(w, r, reply, err)
}

func (s *Server) addTask(w http.ResponseWriter, r *http.Request) {
	var form api.TaskForm
	if err := decodeBody(r, &form); err != nil {
		writeError(w, r, err)
		return
	}
	reply, err := s.api.Tasks.Add(r.Context(), form)
	writeReply(w, r, reply, err)
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	var form api.TaskForm
	if err := decodeBody(r, &form); err != nil {
		writeError(w, r, err)
		return
	}
	reply, err := s.api.Tasks.Update(r.Context(), form)
	writeReply(w, r, reply, err)
}

func (s *Server) runTask(w http.ResponseWriter, r *http.Request) {
	var form api.TaskForm
	if err := decodeBody(r, &form); err != nil {
		writeError(w, r, err)
		return
	}
	reply, err := s.api.Tasks.Run(r.Context(), form)
	writeReply(w, r, reply, err)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	reply, err := s.api.Tasks.Delete(r.Context(), pathRef(r))
	writeReply(w, r, reply, err)
}

func (s *Server) cancelTask(w http.ResponseWriter, r *http.Request) {
	reply, err := s.api.Tasks.Cancel(r.Context(), pathRef(r))
	writeReply(w, r, reply, err)
}

func (s *Server) taskState(w http.ResponseWriter, r *http.Request) {
	reply, err := s.api.Tasks.State(r.Context(), pathRef(r))
	writeReply(w, r, reply, err)
}

func (s *Server) toggleTask(w http.ResponseWriter, r *http.Request) {
	reply, err := s.api.Tasks.ToggleDisabled(r.Context(), pathRef(r))
	writeReply(w, r, reply, err)
}

// pathRef returns the unescaped {ref} segment, an id or a task name.
func pathRef(r *http.Request) string {
	raw := chi.URLParam(r, "ref")
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
