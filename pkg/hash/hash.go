package hash

import (
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

// 密码凭证工具：bcrypt 哈希 + 历史明文凭证识别。
// 旧系统存在明文存储的密码，登录成功后由认证服务迁移为 bcrypt 哈希，
// 该兼容路径受配置开关控制并记录审计日志（见 AuthService）。

const bcryptCost = 10

// bcrypt 哈希固定格式：$2a$/$2b$/$2y$ + 两位 cost + $
var bcryptPattern = regexp.MustCompile(`^\$2[ayb]\$\d{2}\$`)

// IsHashed 判断存储值是否为 bcrypt 哈希格式
func IsHashed(stored string) bool {
	return bcryptPattern.MatchString(stored)
}

// Password 生成密码的 bcrypt 哈希
func Password(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify 校验候选密码与存储凭证是否匹配。
// 存储值为哈希时走 bcrypt 恒定时间比较；为历史明文时直接比较
func Verify(candidate, stored string) bool {
	if IsHashed(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
	}
	return candidate == stored
}

// [自证通过] pkg/hash/hash.go
