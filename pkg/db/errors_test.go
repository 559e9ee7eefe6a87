package db

import (
	"errors"
	"testing"
)

func TestIsUniqueViolation(t *testing.T) {
	if IsUniqueViolation(nil, "") {
		t.Fatal("nil error is not a violation")
	}

	pg := errors.New(`duplicate key value violates unique constraint "usuarios_username_key"`)
	if !IsUniqueViolation(pg, "") {
		t.Fatal("postgres duplicate key message not detected")
	}
	if !IsUniqueViolation(pg, "usuarios_username_key") {
		t.Fatal("named constraint not detected")
	}
	if IsUniqueViolation(pg, "outra_constraint") {
		t.Fatal("unrelated constraint name should not match")
	}

	lite := errors.New("UNIQUE constraint failed: usuarios.username")
	if !IsUniqueViolation(lite, "") {
		t.Fatal("sqlite unique message not detected")
	}

	if IsUniqueViolation(errors.New("connection reset"), "") {
		t.Fatal("unrelated error should not match")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	if IsForeignKeyViolation(nil) {
		t.Fatal("nil error is not a violation")
	}
	if !IsForeignKeyViolation(errors.New(`update or delete on table "escolas" violates foreign key constraint "clientes_escola_id_fkey"`)) {
		t.Fatal("postgres fk message not detected")
	}
	if !IsForeignKeyViolation(errors.New("FOREIGN KEY constraint failed")) {
		t.Fatal("sqlite fk message not detected")
	}
	if IsForeignKeyViolation(errors.New("connection reset")) {
		t.Fatal("unrelated error should not match")
	}
}
