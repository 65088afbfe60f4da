package str_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/km-arc/go-actions/framework/support/str"
)

func TestSnake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"userId", "user_id"},
		{"user", "user"},
		{"UserId", "user_id"},
		{"already_snake", "already_snake"},
		{"HTMLParser", "h_t_m_l_parser"},
		{"user id", "user_id"},
		{"orderLineItem", "order_line_item"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, str.Snake(tt.in))
		})
	}
}

func TestSnakeWith_Delimiter(t *testing.T) {
	assert.Equal(t, "user-id", str.SnakeWith("userId", "-"))
	// cached per delimiter
	assert.Equal(t, "user_id", str.Snake("userId"))
}

func TestStudly(t *testing.T) {
	assert.Equal(t, "UserId", str.Studly("user_id"))
	assert.Equal(t, "UserId", str.Studly("user-id"))
	assert.Equal(t, "FooBarBaz", str.Studly("foo bar_baz"))
}

func TestCamel(t *testing.T) {
	assert.Equal(t, "userId", str.Camel("user_id"))
	assert.Equal(t, "fooBar", str.Camel("FooBar"))
	assert.Equal(t, "", str.Camel(""))
}
