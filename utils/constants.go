// File: utils/constants.go
package utils

import "time"

// CartKeyPrefix is the prefix used for persisted cart keys.
const CartKeyPrefix = "cart:"

// OTPKeyPrefix is the prefix used for pending OTP hashes.
const OTPKeyPrefix = "otp:"

// OTPTTL is how long a requested OTP stays valid.
const OTPTTL = 5 * time.Minute

// DeviceTokenPrefix is the prefix used for FCM device tokens.
const DeviceTokenPrefix = "fcm:"
