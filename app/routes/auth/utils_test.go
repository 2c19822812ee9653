package auth

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPasswordHash("correct horse battery staple", hash) {
		t.Error("correct password should verify")
	}
	if CheckPasswordHash("wrong password", hash) {
		t.Error("wrong password should not verify")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("user-1", "accounts@alfalah.example", "Sara", "Khan", "role-1", "admin")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != "user-1" || claims.Email != "accounts@alfalah.example" {
		t.Errorf("claims round trip failed: %+v", claims)
	}
	if claims.RoleID != "role-1" || claims.RoleName != "admin" {
		t.Errorf("role claims round trip failed: %+v", claims)
	}
}

func TestJWTRejectsTamperedToken(t *testing.T) {
	token, err := GenerateJWT("user-1", "a@b.c", "A", "B", "r", "admin")
	if err != nil {
		t.Fatal(err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := ValidateJWT(tampered); err == nil {
		t.Error("tampered token should be rejected")
	}
}

func TestJWTRejectsGarbage(t *testing.T) {
	if _, err := ValidateJWT("not-a-token"); err == nil {
		t.Error("garbage token should be rejected")
	}
}
