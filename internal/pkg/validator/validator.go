package validator

import (
	"context"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslation "github.com/go-playground/validator/v10/translations/en"

	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/utils/errors"
)

// Rule is a custom validation rule.
// ErrorMsg may contain the {0} placeholder for the field name.
type Rule struct {
	Tag      string
	Func     validator.FuncCtx
	ErrorMsg string
}

type Validator interface {
	// Validate struct or value.
	Validate(ctx context.Context, value any) error
	// ValidateCtx validates a value by the tag, the namespace is used as a prefix in error messages.
	ValidateCtx(ctx context.Context, value any, tag string, namespace string) error
}

type wrapper struct {
	validate   *validator.Validate
	translator ut.Translator
}

func New(rules ...Rule) Validator {
	v := &wrapper{validate: validator.New(validator.WithRequiredStructEnabled())}

	// Register default EN translator
	enLocale := en.New()
	translator, found := ut.New(enLocale, enLocale).GetTranslator("en")
	if !found {
		panic(errors.New("en translator was not found"))
	}
	if err := enTranslation.RegisterDefaultTranslations(v.validate, translator); err != nil {
		panic(errors.Errorf("translator was not registered: %w", err))
	}
	v.translator = translator

	// Use JSON field name in error messages
	v.validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	// Register custom validation rules
	for _, rule := range rules {
		v.registerRule(rule)
	}

	return v
}

func (v *wrapper) Validate(ctx context.Context, value any) error {
	return v.ValidateCtx(ctx, value, "", "")
}

func (v *wrapper) ValidateCtx(ctx context.Context, value any, tag string, namespace string) error {
	var err error
	if isStruct(value) {
		err = v.validate.StructCtx(ctx, value)
	} else {
		err = v.validate.VarCtx(ctx, value, tag)
	}

	var validationErrs validator.ValidationErrors
	switch {
	case err == nil:
		return nil
	case errors.As(err, &validationErrs):
		return v.processErrors(validationErrs, namespace)
	default:
		return err
	}
}

func (v *wrapper) registerRule(rule Rule) {
	if err := v.validate.RegisterValidationCtx(rule.Tag, rule.Func); err != nil {
		panic(err)
	}

	if rule.ErrorMsg == "" {
		return
	}

	err := v.validate.RegisterTranslation(
		rule.Tag,
		v.translator,
		func(t ut.Translator) error {
			return t.Add(rule.Tag, rule.ErrorMsg, true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(rule.Tag, fe.Field())
			return msg
		},
	)
	if err != nil {
		panic(err)
	}
}

func (v *wrapper) processErrors(errs validator.ValidationErrors, namespace string) error {
	result := errors.NewMultiError()
	for _, e := range errs {
		path := fieldPath(e)
		if namespace != "" {
			path = strings.TrimSuffix(namespace+"."+path, ".")
		}

		msg := e.Translate(v.translator)
		if path != "" {
			msg = strings.Replace(msg, e.Field(), `"`+path+`"`, 1)
		}
		result.Append(errors.New(msg))
	}
	return result.ErrorOrNil()
}

// fieldPath removes the struct name (first part) from the namespace.
func fieldPath(e validator.FieldError) string {
	namespace := e.Namespace()
	if _, after, found := strings.Cut(namespace, "."); found {
		return after
	}
	return e.Field()
}

func isStruct(value any) bool {
	t := reflect.TypeOf(value)
	if t == nil {
		return false
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}
