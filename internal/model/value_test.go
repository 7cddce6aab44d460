package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_Kinds(t *testing.T) {
	assert.Equal(t, KindNull, Null().Kind())
	assert.Equal(t, KindNumber, Num(1.5).Kind())
	assert.Equal(t, KindString, Str("x").Kind())
}

func TestValue_Float(t *testing.T) {
	f, ok := Num(2.25).Float()
	assert.True(t, ok)
	assert.Equal(t, 2.25, f)

	_, ok = Str("2.25").Float()
	assert.False(t, ok)

	_, ok = Null().Float()
	assert.False(t, ok)
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "3.5", Num(3.5).String())
	assert.Equal(t, "abc", Str("abc").String())
	assert.Equal(t, "", Null().String())
}

func TestValue_Equal(t *testing.T) {
	assert.True(t, Num(1).Equal(Num(1)))
	assert.True(t, Null().Equal(Null()))
	assert.False(t, Num(1).Equal(Str("1")))
	assert.False(t, Str("a").Equal(Str("b")))
}

func TestFromInterface(t *testing.T) {
	assert.Equal(t, Num(4), FromInterface(float64(4)))
	assert.Equal(t, Str("x"), FromInterface("x"))
	assert.Equal(t, Null(), FromInterface(nil))
	assert.Equal(t, Str("true"), FromInterface(true))
}

func TestValue_Interface(t *testing.T) {
	assert.Equal(t, 4.0, Num(4).Interface())
	assert.Equal(t, "x", Str("x").Interface())
	assert.Nil(t, Null().Interface())
}
