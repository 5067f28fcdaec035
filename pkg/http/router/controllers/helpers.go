package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/lintang-b-s/TourPlanner/pkg/util"
	"go.uber.org/zap"
)

type envelope map[string]interface{}

// maximum accepted request body, bytes
const maxBodyBytes = 1 << 20

var (
	validate *validator.Validate
	trans    ut.Translator
)

func init() {
	validate = validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ = uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	validate.RegisterStructValidation(validateSelection, tourRequest{}, impactRequest{})
	_ = validate.RegisterTranslation("min_selection", trans, func(ut ut.Translator) error {
		return ut.Add("min_selection", "{0} must contain at least {1} distinct points besides the start", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("min_selection", fe.Field(), fe.Param())
		return t
	})
}

// validateSelection. the start id and repeated ids do not count towards the minimum; shorter lists are
// already rejected by the min tag.
func validateSelection(sl validator.StructLevel) {
	var (
		startID int64
		ids     []int64
	)
	switch req := sl.Current().Interface().(type) {
	case tourRequest:
		startID, ids = req.StartID, req.PointIDs
	case impactRequest:
		startID, ids = req.StartID, req.PointIDs
	default:
		return
	}
	if len(ids) < minSelectedPoints {
		return
	}
	if countSelected(startID, ids) < minSelectedPoints {
		sl.ReportError(ids, "PointIDs", "PointIDs", "min_selection", strconv.Itoa(minSelectedPoints))
	}
}

func countSelected(startID int64, ids []int64) int {
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id != startID {
			seen[id] = struct{}{}
		}
	}
	return len(seen)
}

func writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var (
			syntaxError    *json.SyntaxError
			unmarshalError *json.UnmarshalTypeError
			maxBytesError  *http.MaxBytesError
		)
		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalError):
			return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalError.Field)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			return fmt.Errorf("body contains unknown key %s", strings.TrimPrefix(err.Error(), "json: unknown field "))
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)
		default:
			return err
		}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}

// validateRequest. nil or a validation error with english messages.
func validateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		return fmt.Errorf("validation error: %v", vvString)
	}
	return nil
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	for _, e := range validatorErrs {
		errs = append(errs, errors.New(e.Translate(trans)))
	}
	return errs
}

func newErrorEnvelope(status int, message interface{}) envelope {
	return envelope{"error": map[string]interface{}{
		"code":    http.StatusText(status),
		"message": message,
	}}
}

func (api *plannerAPI) logError(r *http.Request, err error) {
	api.log.Error("request failed", zap.Error(err), zap.String("method", r.Method),
		zap.String("url", r.URL.String()))
}

func (api *plannerAPI) errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	if err := writeJSON(w, status, newErrorEnvelope(status, message), nil); err != nil {
		api.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (api *plannerAPI) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.logError(r, err)
	api.errorResponse(w, r, http.StatusInternalServerError, util.MessageInternalServerError)
}

func (api *plannerAPI) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (api *plannerAPI) NotFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusNotFound, err.Error())
}

func (api *plannerAPI) ConflictResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusConflict, err.Error())
}

// getStatusCode. writes the error response matching the util.Error code of err.
func (api *plannerAPI) getStatusCode(w http.ResponseWriter, r *http.Request, err error) {
	var ierr *util.Error
	if !errors.As(err, &ierr) {
		api.ServerErrorResponse(w, r, err)
		return
	}

	switch ierr.Code() {
	case util.ErrNotFound:
		api.NotFoundResponse(w, r, err)
	case util.ErrBadParamInput:
		api.BadRequestResponse(w, r, err)
	case util.ErrConflict:
		api.ConflictResponse(w, r, err)
	default:
		api.ServerErrorResponse(w, r, err)
	}
}
