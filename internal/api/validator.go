package api

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// numeric(15,2)：最多 13 位整數、2 位小數
var decimalPattern = regexp.MustCompile(`^-?\d{1,13}(\.\d{1,2})?$`)

const isoDateLayout = "2006-01-02"

// Validator 實作 echo.Validator
type Validator struct {
	v *validator.Validate
}

// partialValidator 由含 Optional 欄位的請求實作，validator 無法檢查 Optional 內部
type partialValidator interface {
	validatePartial(v *Validator) error
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// 註冊失敗只會發生在 tag 名稱為空
	_ = v.RegisterValidation("decimal", func(fl validator.FieldLevel) bool {
		return IsDecimal(fl.Field().String())
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return IsISODate(fl.Field().String())
	})
	return &Validator{v: v}
}

func (cv *Validator) Validate(i interface{}) error {
	if err := cv.v.Struct(i); err != nil {
		return err
	}
	if pv, ok := i.(partialValidator); ok {
		return pv.validatePartial(cv)
	}
	return nil
}

// IsDecimal 檢查定點小數字串，例如 "1000.00"、"-5.5"
func IsDecimal(s string) bool {
	if !decimalPattern.MatchString(s) {
		return false
	}
	_, err := decimal.NewFromString(s)
	return err == nil
}

// IsISODate 檢查 YYYY-MM-DD 且為實際存在的日期
func IsISODate(s string) bool {
	_, err := time.Parse(isoDateLayout, s)
	return err == nil
}

// FieldError 描述單一欄位的驗證失敗
type FieldError struct {
	Field string
	Rule  string
}

func (e *FieldError) Error() string {
	if e.Rule == "null" {
		return fmt.Sprintf("%s must not be null", e.Field)
	}
	return fmt.Sprintf("%s failed on the '%s' rule", e.Field, e.Rule)
}

// ValidationMessage 將驗證錯誤轉成回應訊息
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return (&FieldError{Field: fe.Field(), Rule: fe.Tag()}).Error()
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Error()
	}
	return "invalid request body"
}

func checkOptional[T any](v *Validator, field string, o Optional[T], tag string) error {
	if !o.Set {
		return nil
	}
	if o.Null {
		return &FieldError{Field: field, Rule: "null"}
	}
	if err := v.v.Var(o.Value, tag); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &FieldError{Field: field, Rule: verrs[0].Tag()}
		}
		return err
	}
	return nil
}

// checkTagIDs 允許 null（清空標籤）
func checkTagIDs(v *Validator, o Optional[[]int]) error {
	if !o.Set || o.Null || len(o.Value) == 0 {
		return nil
	}
	return checkOptional(v, "tagIds", o, "dive,gt=0")
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
