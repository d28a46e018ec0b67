// Package validation implementa la capa de validación declarativa de las peticiones: decodifica el
// cuerpo JSON campo a campo, aplica las reglas `validate:"..."` de los DTO y agrega todas las
// violaciones en un *domain.ValidationError antes de llegar a la lógica de negocio.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	estranslations "github.com/go-playground/validator/v10/translations/es"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/usuarios-api/internal/domain"
)

// Mensajes propios (los de reglas vienen de las traducciones es del validator).
const (
	msgInvalidType = "tipo inválido"
	msgNull        = "no puede ser nulo"
	msgInvalidID   = "id inválido"
)

// Validator envuelve go-playground/validator con nombres de campo JSON y mensajes en español.
// Es seguro para uso concurrente.
type Validator struct {
	v     *validator.Validate
	trans ut.Translator
}

// New construye el validador y registra las traducciones en español.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonName)

	locale := es.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator("es")
	if err := estranslations.RegisterDefaultTranslations(v, trans); err != nil {
		panic("registrar traducciones del validador: " + err.Error())
	}
	return &Validator{v: v, trans: trans}
}

// DecodeAndValidate decodifica body sobre dst (puntero a struct DTO) y valida sus reglas.
//
// Devuelve domain.ErrInvalidBody si el cuerpo no es un objeto JSON, o un *domain.ValidationError
// con TODAS las violaciones (tipo, nulos y reglas) ordenadas según la declaración del struct.
func (val *Validator) DecodeAndValidate(body []byte, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("validation: destino debe ser puntero a struct, recibido %T", dst)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return domain.ErrInvalidBody
	}

	sv := rv.Elem()
	st := sv.Type()
	decodeErrs := make(map[string]string)
	for i := 0; i < st.NumField(); i++ {
		sf := st.Field(i)
		name := jsonName(sf)
		if name == "" {
			continue
		}
		msg, ok := raw[name]
		if !ok {
			continue
		}
		field := sv.Field(i)
		if bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
			decodeErrs[name] = msgNull
			continue
		}
		if err := json.Unmarshal(msg, field.Addr().Interface()); err != nil {
			field.Set(reflect.Zero(sf.Type))
			decodeErrs[name] = msgInvalidType
			continue
		}
		normalize(field, sf.Tag.Get("normalize"))
	}

	ruleErrs := make(map[string]string)
	if err := val.v.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			if _, seen := ruleErrs[fe.Field()]; !seen {
				ruleErrs[fe.Field()] = fe.Translate(val.trans)
			}
		}
	}

	var fields []domain.FieldError
	for i := 0; i < st.NumField(); i++ {
		name := jsonName(st.Field(i))
		if name == "" {
			continue
		}
		if m, ok := decodeErrs[name]; ok {
			fields = append(fields, domain.FieldError{Field: name, Message: m})
		} else if m, ok := ruleErrs[name]; ok {
			fields = append(fields, domain.FieldError{Field: name, Message: m})
		}
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields...)
	}
	return nil
}

// ParseID valida un id de ruta: entero >= 1.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id < 1 {
		return 0, domain.NewValidationError(domain.FieldError{Field: "id", Message: msgInvalidID})
	}
	return id, nil
}

// Merge junta las violaciones de varios chequeos en un único *domain.ValidationError, en el
// orden recibido. Un error que no sea de validación (cuerpo ilegible, fallo interno) gana.
func Merge(errs ...error) error {
	var fields []domain.FieldError
	for _, err := range errs {
		if err == nil {
			continue
		}
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		fields = append(fields, verr.Fields...)
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields...)
	}
	return nil
}

func jsonName(sf reflect.StructField) string {
	name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// normalize aplica las transformaciones del tag `normalize:"trim,nfc"` sobre string o *string.
func normalize(field reflect.Value, ops string) {
	if ops == "" {
		return
	}
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return
		}
		field = field.Elem()
	}
	if field.Kind() != reflect.String {
		return
	}
	s := field.String()
	for _, op := range strings.Split(ops, ",") {
		switch strings.TrimSpace(op) {
		case "trim":
			s = strings.TrimSpace(s)
		case "nfc":
			s = norm.NFC.String(s)
		}
	}
	field.SetString(s)
}
