package service

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// 与前端一致的宽松邮箱格式 local@domain.tld
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("simple_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

// failedFields 字段名 -> 首个未通过的规则；非校验错误原样返回
func failedFields(err error) (map[string]string, error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	res := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		res[fe.Field()] = fe.Tag()
	}
	return res, nil
}

func anyMissing(failed map[string]string) bool {
	for _, tag := range failed {
		if tag == "required" {
			return true
		}
	}
	return false
}
