// Package password 树洞身份凭证的bcrypt散列
package password

import (
	"golang.org/x/crypto/bcrypt"
)

// Hash 生成密码散列，注册时写入身份记录
func Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify 校验明文密码与身份记录中的散列是否匹配
func Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
