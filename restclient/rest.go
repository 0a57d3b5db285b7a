// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

// This file provides generic REST client code.

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"

	"github.com/diffeo/go-cmsrest/input"
	"github.com/diffeo/go-cmsrest/output"
	"github.com/diffeo/go-cmsrest/restdata"
	"github.com/jtacoma/uritemplates"
	"github.com/ugorji/go/codec"
)

// resource is any object that has a URL.
type resource struct {
	URL *url.URL
}

// Template expands a URI template with vars and resolves the result
// relative to the resource's URL.
func (r *resource) Template(template string, vars map[string]interface{}) (*url.URL, error) {
	// Build the template object
	tmpl, err := uritemplates.Parse(template)
	if err != nil {
		return nil, err
	}

	// Template values must be strings
	values := make(map[string]interface{}, len(vars))
	for k, v := range vars {
		values[k] = fmt.Sprint(v)
	}

	// Expand the template to produce a string
	expanded, err := tmpl.Expand(values)
	if err != nil {
		return nil, err
	}

	// Return the parsed URL of the result, relative to ourselves
	return r.URL.Parse(expanded)
}

// Do performs some HTTP action.  If body is non-nil, it is encoded as
// the root element of a typeName document and sent as the body of,
// for instance, a POST request.  Any response body is decoded into
// the returned document.  Unsuccessful responses return an ErrorHTTP.
func (c *Client) Do(method string, url *url.URL, typeName string, body *input.Fragment) (doc *Document, err error) {
	// Set up the request body, if there is one
	var encoded []byte
	if body != nil {
		encoded, err = c.encode(typeName, body)
		if err != nil {
			return nil, err
		}
	}

	// Create the request and set headers
	req, err := http.NewRequest(method, url.String(), bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", restdata.MediaType(typeName, c.format()))
	}
	req.Header.Set("Accept", "application/"+c.format())

	// Actually do the request
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	// If the response included a body, clean up afterwards
	if resp.Body != nil {
		defer func() {
			err = firstError(err, resp.Body.Close())
		}()
	}

	// Check the response code
	if err = checkHTTPStatus(resp); err != nil {
		return nil, err
	}

	doc = &Document{Status: resp.StatusCode, Header: resp.Header}
	if resp.Body == nil || resp.StatusCode == http.StatusNoContent || method == http.MethodHead {
		return doc, nil
	}
	doc.TypeName, doc.Root, err = input.Decode(resp.Header.Get("Content-Type"), resp.Body)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *Client) format() string {
	if c.Format == "" {
		return restdata.FormatJSON
	}
	return c.Format
}

// encode renders a request body in the client's format.
func (c *Client) encode(typeName string, body *input.Fragment) ([]byte, error) {
	var g output.Generator
	if c.format() == restdata.FormatXML {
		g = output.NewXMLGenerator()
	} else {
		g = output.NewJSONGenerator()
	}
	g.StartDocument()
	writeObject(g, typeName, body)
	return g.EndDocument()
}

// Get retrieves the resource at href, which is resolved relative to
// the client's base URL.
func (c *Client) Get(href string) (*Document, error) {
	url, err := c.URL.Parse(href)
	if err != nil {
		return nil, err
	}
	return c.Do(http.MethodGet, url, "", nil)
}

// GetFrom retrieves a resource from a URL built from a URI template.
// template is modified by vars, and the result taken relative to the
// client's base URL.
func (c *Client) GetFrom(template string, vars map[string]interface{}) (*Document, error) {
	url, err := c.Template(template, vars)
	if err != nil {
		return nil, err
	}
	return c.Do(http.MethodGet, url, "", nil)
}

// Post submits a typeName document to href.
func (c *Client) Post(href, typeName string, body *input.Fragment) (*Document, error) {
	url, err := c.URL.Parse(href)
	if err != nil {
		return nil, err
	}
	return c.Do(http.MethodPost, url, typeName, body)
}

// Patch submits a typeName document to href, which updates the
// resource there.
func (c *Client) Patch(href, typeName string, body *input.Fragment) (*Document, error) {
	url, err := c.URL.Parse(href)
	if err != nil {
		return nil, err
	}
	return c.Do(http.MethodPatch, url, typeName, body)
}

// ErrorHTTP is a catch-all error for non-successes returned from the
// REST endpoint.
type ErrorHTTP struct {
	// Response holds a pointer to the failing HTTP response.
	Response *http.Response

	// Body holds the contents of the message body, presumed to
	// be text.
	Body string

	// Description is the server's description of the error, if
	// the body was an error document.
	Description string
}

func (e ErrorHTTP) Error() string {
	if e.Description == "" {
		return e.Response.Status
	}
	return e.Response.Status + ": " + e.Description
}

// HTTPStatus returns the status code of the failed response.
func (e ErrorHTTP) HTTPStatus() int {
	return e.Response.StatusCode
}

// checkHTTPStatus examines an HTTP response and returns an error if
// it is not successful.
func checkHTTPStatus(resp *http.Response) error {
	if len(resp.Status) > 0 && resp.Status[0] == '2' {
		return nil
	}

	// Always collect the entire body; we will need it as a fallback
	// and can only parse it once.
	var body []byte
	var err error
	if resp.Body != nil {
		body, err = ioutil.ReadAll(resp.Body)
		if err != nil {
			return err
		}
	}
	result := ErrorHTTP{Response: resp, Body: string(body)}

	// Take a shot at decoding it as a better error
	contentType := resp.Header.Get("Content-Type")
	typeName, root, err := input.Decode(contentType, bytes.NewReader(body))
	if err == nil && typeName == "ErrorMessage" {
		result.Description, _ = root.String("errorDescription")
		return result
	}

	// A panic produces a plain JSON ErrorResponse
	if strings.HasPrefix(contentType, "application/json") {
		var errResp restdata.ErrorResponse
		decoder := codec.NewDecoderBytes(body, &codec.JsonHandle{})
		if decoder.Decode(&errResp) == nil {
			result.Description = errResp.Message
		}
	}
	return result
}

func firstError(e1, e2 error) error {
	if e1 != nil {
		return e1
	}
	return e2
}
