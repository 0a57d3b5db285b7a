// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

// This file contains a REST skeleton framework.
//
// The bulk of this is dealing with HTTP content type negotiation, and
// providing a standard way to deal with input and output values.
// Request bodies are decoded into fragments and handed to the input
// dispatcher; whatever the handler returns, including errors, is
// rendered by the output visitors.

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/diffeo/go-cmsrest/input"
	"github.com/diffeo/go-cmsrest/output"
	"github.com/diffeo/go-cmsrest/restdata"
	"github.com/sirupsen/logrus"
	"github.com/ugorji/go/codec"
)

// typeMap maps the generic media types this API understands to a
// response format.  Vendor types are handled by
// restdata.ParseMediaType.
var typeMap = map[string]string{
	"text/json":        restdata.FormatJSON,
	"application/json": restdata.FormatJSON,
	"text/xml":         restdata.FormatXML,
	"application/xml":  restdata.FormatXML,
}

// formatOf returns the response format for a media type, or "" if it
// is not one this API produces.
func formatOf(mediaType string) string {
	if format, known := typeMap[mediaType]; known {
		return format
	}
	if strings.HasPrefix(mediaType, restdata.VendorPrefix) {
		if parsed, err := restdata.ParseMediaType(mediaType); err == nil {
			return parsed.Format
		}
	}
	return ""
}

// errBadAccept is returned from negotiateResponse() if the Accept:
// header is malformed (and no more specific error applies).
var errBadAccept = restdata.ErrBadRequest{Err: errors.New("Invalid Accept: header")}

// errNotAcceptable is returned from negotiateResponse() if the Accept:
// header does not mention any media types we can actually return.
type errNotAcceptable struct{}

func (e errNotAcceptable) Error() string {
	return "No acceptable representation for response"
}

func (e errNotAcceptable) HTTPStatus() int {
	return http.StatusNotAcceptable
}

// errNotImplemented is returned from an arbitrary handler function if
// the actual function is not implemented.
type errNotImplemented struct {
	Text string
}

func (e errNotImplemented) Error() string {
	if e.Text == "" {
		return "Not implemented"
	}
	return e.Text
}

func (e errNotImplemented) HTTPStatus() int {
	return http.StatusNotImplemented
}

// errMethodNotAllowed is used within the resourceHandler implementation
// to flag an error if a particular HTTP method is not allowed.  This
// corresponds exactly to the 405 Method Not Allowed HTTP status code.
type errMethodNotAllowed struct {
	Method string
}

func (e errMethodNotAllowed) Error() string {
	return fmt.Sprintf("Method %v not allowed", e.Method)
}

func (e errMethodNotAllowed) HTTPStatus() int {
	return http.StatusMethodNotAllowed
}

type resourceHandler struct {
	// API holds the shared server state.
	API *restAPI

	// Name is the route name, used to label metrics and logs.
	Name string

	// Input lists the type names accepted as request bodies.
	Input []string

	// Get, if non-nil, returns a representation of the object.
	Get func(*context) (interface{}, error)

	// Post, if non-nil, takes some arbitrary action.  The
	// interface parameter is the parsed request body.  The
	// return can be any value the output visitors render,
	// including restdata.CreatedContentType and similar.
	Post func(*context, interface{}) (interface{}, error)

	// Patch, if non-nil, updates the object from the parsed
	// request body.
	Patch func(*context, interface{}) (interface{}, error)
}

func (h *resourceHandler) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	var (
		ctx    *context
		in     interface{}
		out    interface{}
		err    error
		format string
	)

	// Recover from panics by sending an HTTP error.
	defer func() {
		if recovered := recover(); recovered != nil {
			response := restdata.ErrorResponse{}
			response.FromPanic(recovered)
			h.API.Logger.WithFields(logrus.Fields{
				"route":  h.Name,
				"method": req.Method,
				"panic":  response.Message,
			}).Error("panic serving request")
			responsesTotal.WithLabelValues(h.Name, req.Method, "500").Inc()
			resp.Header().Set("Content-Type", "application/json")
			resp.WriteHeader(http.StatusInternalServerError)
			json := &codec.JsonHandle{}
			encoder := codec.NewEncoder(resp, json)
			_ = encoder.Encode(response)
		}
	}()

	// Start by trying to come up with a response type, even before
	// trying to parse the input.  This determines what format an
	// error message could be sent back as.
	format, err = negotiateResponse(req)
	if err != nil {
		// Gotta pick something
		format = restdata.FormatJSON
	}

	// Get bits from URL parameters
	if err == nil {
		ctx, err = h.API.Context(req)
	}

	// Read and parse the body, if it's there
	if err == nil && (req.Method == http.MethodPost || req.Method == http.MethodPatch) {
		in, err = h.parseBody(ctx, req)
	}

	// Actually call the handler method
	if err == nil {
		// We will return this if the method is unexpected or
		// we don't have a handler for it
		err = errMethodNotAllowed{Method: req.Method}
		switch req.Method {
		case http.MethodGet, http.MethodHead:
			if h.Get != nil {
				out, err = h.Get(ctx)
			}
		case http.MethodPost:
			if h.Post != nil {
				out, err = h.Post(ctx, in)
			}
		case http.MethodPatch:
			if h.Patch != nil {
				out, err = h.Patch(ctx, in)
			}
		}
	}

	if err != nil {
		out = err
		if restdata.StatusOf(err) >= http.StatusInternalServerError {
			h.API.Logger.WithFields(logrus.Fields{
				"route":  h.Name,
				"method": req.Method,
				"err":    err,
			}).Error("error serving request")
		}
	}

	if out == nil {
		responsesTotal.WithLabelValues(h.Name, req.Method, strconv.Itoa(http.StatusNoContent)).Inc()
		resp.WriteHeader(http.StatusNoContent)
		return
	}

	rendered, err := h.render(format, out)
	if err != nil {
		// Rendering the result failed; try to at least render
		// the failure.  If that fails too, the panic handler
		// takes over.
		h.API.Logger.WithFields(logrus.Fields{
			"route": h.Name,
			"type":  fmt.Sprintf("%T", out),
			"err":   err,
		}).Error("could not render response")
		rendered, err = h.render(format, err)
		if err != nil {
			panic(err)
		}
	}

	responsesTotal.WithLabelValues(h.Name, req.Method, strconv.Itoa(rendered.Status)).Inc()
	for name, values := range rendered.Header {
		for _, value := range values {
			resp.Header().Add(name, value)
		}
	}
	resp.WriteHeader(rendered.Status)
	if req.Method != http.MethodHead {
		// By this point we've already written an HTTP status
		// line, so there's nothing useful to do on failure.
		_, _ = resp.Write(rendered.Body)
	}
}

// parseBody decodes the request body and runs it through the input
// dispatcher.
func (h *resourceHandler) parseBody(ctx *context, req *http.Request) (interface{}, error) {
	typeName, fragment, err := input.Decode(req.Header.Get("Content-Type"), req.Body)
	if err != nil {
		return nil, err
	}
	accepted := false
	for _, name := range h.Input {
		if name == typeName {
			accepted = true
			break
		}
	}
	if !accepted {
		return nil, restdata.ErrUnsupportedMediaType{Type: req.Header.Get("Content-Type")}
	}
	// Only the query string asks for publishing.
	fragment.Delete(input.PublishKey)
	if ctx.BoolParam("publish", false) {
		fragment.Set(input.PublishKey, "true")
	}

	in, err := h.API.Dispatcher.Parse(fragment, typeName)
	result := "ok"
	if err != nil {
		result = "error"
	}
	parsesTotal.WithLabelValues(typeName, result).Inc()
	return in, err
}

// render produces a complete response document for out.
func (h *resourceHandler) render(format string, out interface{}) (*output.Response, error) {
	visitor := output.NewVisitor(h.API.Visitors, h.API.newGenerator(format), h.API.Routes)
	return visitor.Visit(out)
}

// negotiateResponse returns a supported response format, following
// the path laid out in RFC 7231 section 5.3.
func negotiateResponse(req *http.Request) (string, error) {
	accept := req.Header.Get("Accept")
	if accept == "" {
		accept = "*/*"
	}
	bestType := ""
	bestQ := 0.0
	mediaRanges := strings.Split(accept, ",")
	for _, mediaRange := range mediaRanges {
		mediaRange = strings.TrimSpace(mediaRange)
		mediaType, params, err := mime.ParseMediaType(mediaRange)
		if err != nil {
			return "", restdata.ErrBadRequest{Err: err}
		}

		// What is the "q" ("quality") parameter for this type?
		// If it is less than the best known so far, skip it
		q := 1.0
		if qStr, haveQ := params["q"]; haveQ {
			q, err = strconv.ParseFloat(qStr, 64)
			if err != nil {
				return "", errBadAccept
			}
			if q < 0.0 || q > 1.0 {
				return "", errBadAccept
			}
		}
		if q < bestQ {
			continue
		}

		// This is acceptable if it's a type we produce; or
		// it's one of a couple of specific wildcards.  Also
		// need to handle wildcard precedence.  So:
		if mediaType == "*/*" {
			// Doesn't override anything.
			if q > bestQ {
				bestType = mediaType
				bestQ = q
			}
		} else if mediaType == "text/*" || mediaType == "application/*" {
			// Only overrides "*/*".
			if q > bestQ || bestType == "*/*" {
				bestType = mediaType
				bestQ = q
			}
		} else if formatOf(mediaType) != "" {
			// Overrides any wildcard.  We want the first one
			// at a given q to win.
			if q > bestQ || bestType == "*/*" || bestType == "text/*" || bestType == "application/*" {
				bestType = mediaType
				bestQ = q
			}
		}
		// Otherwise we don't recognize this type at all, so
		// just drop it.
	}
	// If this failed to win, return an error
	if bestQ == 0.0 {
		return "", errNotAcceptable{}
	}
	switch bestType {
	case "*/*", "application/*", "text/*":
		return restdata.FormatJSON, nil
	default:
		return formatOf(bestType), nil
	}
}
