package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"campus-portal-backend/internal/services"
)

const maxJSONBytes = 1 << 20

// requestError is a transport-level rejection that never reaches a service.
type requestError struct {
	status  int
	code    string
	message string
}

func (e *requestError) Error() string { return e.message }

var errUnsupportedMediaType = &requestError{
	status:  http.StatusUnsupportedMediaType,
	code:    "UNSUPPORTED_MEDIA_TYPE",
	message: "Content-Type must be application/json, application/x-www-form-urlencoded or multipart/form-data",
}

func invalidBody(message string, fields map[string]string) error {
	return &services.ValidationError{Message: message, Fields: fields}
}

// decodeJSON reads a single JSON object into dst. Unknown fields are rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return jsonError(err)
	}
	if dec.More() {
		return invalidBody("Request body must contain a single JSON object", nil)
	}
	return nil
}

func jsonError(err error) error {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		tooLarge  *http.MaxBytesError
	)

	switch {
	case errors.Is(err, io.EOF):
		return invalidBody("Request body is required", nil)
	case errors.As(err, &tooLarge):
		return &requestError{status: http.StatusRequestEntityTooLarge, code: "PAYLOAD_TOO_LARGE", message: "Request body is too large"}
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return invalidBody("Invalid request body", nil)
	case errors.As(err, &typeErr):
		return invalidBody("Invalid request body", map[string]string{typeErr.Field: typeErr.Field + " has the wrong type"})
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		name, uerr := strconv.Unquote(strings.TrimPrefix(err.Error(), "json: unknown field "))
		if uerr != nil {
			name = strings.TrimPrefix(err.Error(), "json: unknown field ")
		}
		return invalidBody("Unknown field in request body", map[string]string{name: "unknown field"})
	default:
		return invalidBody("Invalid request body", nil)
	}
}

// decodePayload fills dst from a JSON, urlencoded or multipart body. Form
// keys are matched against dst's json tags. Multipart file parts are only
// accepted under the names in fileFields and are returned by name.
func decodePayload(w http.ResponseWriter, r *http.Request, dst interface{}, maxBytes int64, fileFields ...string) (map[string]*multipart.FileHeader, error) {
	mediaType := "application/json"
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return nil, errUnsupportedMediaType
		}
		mediaType = mt
	}

	switch mediaType {
	case "application/json":
		return nil, decodeJSON(w, r, dst)

	case "application/x-www-form-urlencoded":
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBytes)
		if err := r.ParseForm(); err != nil {
			return nil, formError(err)
		}
		return nil, bindForm(r.PostForm, dst)

	case "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+maxJSONBytes)
		if err := r.ParseMultipartForm(maxJSONBytes); err != nil {
			return nil, formError(err)
		}
		if err := bindForm(r.MultipartForm.Value, dst); err != nil {
			return nil, err
		}

		files := make(map[string]*multipart.FileHeader)
		unknown := make(map[string]string)
		for name, headers := range r.MultipartForm.File {
			if !contains(fileFields, name) {
				unknown[name] = "unknown field"
				continue
			}
			if len(headers) > 0 {
				files[name] = headers[0]
			}
		}
		if len(unknown) > 0 {
			return nil, invalidBody("Unknown field in request body", unknown)
		}
		return files, nil

	default:
		return nil, errUnsupportedMediaType
	}
}

func formError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &requestError{status: http.StatusRequestEntityTooLarge, code: "PAYLOAD_TOO_LARGE", message: "Request body is too large"}
	}
	return invalidBody("Invalid form body", nil)
}

// bindForm assigns the first value of each form key to the struct field with
// the matching json tag. Keys without a field are reported as unknown. Bool
// fields are true only for the literal "true".
func bindForm(values url.Values, dst interface{}) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("bindForm: dst must be a pointer to a struct, got %T", dst)
	}
	rv = rv.Elem()
	rt := rv.Type()

	index := make(map[string]int, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		name, _, _ := strings.Cut(rt.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			index[name] = i
		}
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make(map[string]string)
	for _, key := range keys {
		i, ok := index[key]
		if !ok {
			fields[key] = "unknown field"
			continue
		}
		if len(values[key]) == 0 {
			continue
		}
		raw := values[key][0]

		fv := rv.Field(i)
		switch fv.Kind() {
		case reflect.String:
			fv.SetString(raw)
		case reflect.Bool:
			fv.SetBool(raw == "true")
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n, err := strconv.ParseInt(raw, 10, fv.Type().Bits())
			if err != nil {
				fields[key] = key + " must be an integer"
				continue
			}
			fv.SetInt(n)
		default:
			fields[key] = key + " is not supported in form bodies"
		}
	}

	if len(fields) > 0 {
		return invalidBody("Invalid form body", fields)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
