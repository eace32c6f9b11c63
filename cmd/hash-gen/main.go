package main

import (
	"fmt"
	"log"
	"os"

	"seller-panel.backend/pkg/crypto"
)

var (
	printfFn       = fmt.Printf
	generateHashFn = generateHash
	generateOtpFn  = crypto.GenerateOTP
	fatalfFn       = log.Fatalf
)

const otpFlag = "-otp"

// resolveSecret returns the secret to hash and whether a fresh OTP was requested.
func resolveSecret(args []string) (string, bool) {
	if len(args) > 0 && args[0] == otpFlag {
		return "", true
	}
	if len(args) > 0 {
		return args[0], false
	}
	return "Seller.Demo-2024", false
}

func generateHash(secret string) (string, error) {
	return crypto.NewHasher(crypto.DefaultCost).Hash(secret)
}

func main() {
	secret, wantOtp := resolveSecret(os.Args[1:])
	if wantOtp {
		otp, err := generateOtpFn(crypto.OTPDigits)
		if err != nil {
			fatalfFn("Failed to generate otp: %v", err)
			return
		}
		secret = otp
		printfFn("Generated OTP: %s\n", otp)
	} else {
		printfFn("Generating hash for password: %s\n", secret)
	}

	hash, err := generateHashFn(secret)
	if err != nil {
		fatalfFn("Failed to hash secret: %v", err)
		return
	}

	printfFn("Bcrypt Hash: %s\n", hash)
}
