package dto

import (
	"reflect"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var cnPhonePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)

// RegisterValidators 注册自定义校验规则，启动时调用一次
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return Register(v)
}

// Register 在指定 validator 上注册
//   - cn_phone: 中国大陆手机号
//   - decimal_gt0: 金额大于 0
//   - decimal.Decimal 按 float64 参与 gte/lte 等内置规则
func Register(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	if err := v.RegisterValidation("cn_phone", func(fl validator.FieldLevel) bool {
		return cnPhonePattern.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("decimal_gt0", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() == reflect.Float64 {
			return field.Float() > 0
		}
		return false
	})
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return nil
}
