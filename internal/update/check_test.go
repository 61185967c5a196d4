package update

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckIdentity(t *testing.T) {
	assert.False(t, Success().And(Success()).Failed())

	f := Failure("sbt 0.5.0", "sbt.version")
	assert.Equal(t, f, Success().And(f))
	assert.Equal(t, f, f.And(Success()))
}

func TestCheckCombineFailures(t *testing.T) {
	a := Failure("sbt 0.5.0", "sbt.version")
	b := Failure("Scala 2.7.2", "scala.version")

	c := a.And(b)
	assert.True(t, c.Failed())
	assert.Equal(t, "sbt 0.5.0 and Scala 2.7.2", c.Label())
	assert.Equal(t, []string{"sbt.version", "scala.version"}, c.RetryKeys())
}

func TestCheckCombineLabelOrder(t *testing.T) {
	// Concatenation preserves operand order.
	c := Failure("Scala 2.7.2", "scala.version").And(Failure("sbt 0.5.0", "sbt.version"))
	assert.Equal(t, "Scala 2.7.2 and sbt 0.5.0", c.Label())
}

func TestCheckKeyUnion(t *testing.T) {
	a := Failure("first", "sbt.version", "scala.version")
	b := Failure("second", "scala.version")

	c := a.And(b)
	assert.Equal(t, []string{"sbt.version", "scala.version"}, c.RetryKeys())
}

func TestCheckAssociative(t *testing.T) {
	a := Failure("a", "k1")
	b := Failure("b", "k2")
	c := Failure("c", "k3")

	left := a.And(b).And(c)
	right := a.And(b.And(c))
	assert.Equal(t, left.Label(), right.Label())
	assert.Equal(t, left.RetryKeys(), right.RetryKeys())
}
