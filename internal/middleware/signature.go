package middleware

import (
	"crypto/ed25519"
	"encoding/hex"

	"github.com/gofiber/fiber/v2"
	"github.com/nexus/godiscord/config"
)

// VerifySignature checks the Ed25519 signature Discord attaches to every
// interaction delivery. The signed message is the timestamp header
// concatenated with the raw body; Discord expects a 401 on mismatch and
// probes the endpoint with bad signatures on registration.
func VerifySignature(cfg *config.Config) fiber.Handler {
	pubKey, keyErr := hex.DecodeString(cfg.DiscordPublicKey)

	return func(c *fiber.Ctx) error {
		if keyErr != nil || len(pubKey) != ed25519.PublicKeySize {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "interaction endpoint public key not configured",
			})
		}

		sig, err := hex.DecodeString(c.Get("X-Signature-Ed25519"))
		if err != nil || len(sig) != ed25519.SignatureSize {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid request signature"})
		}
		timestamp := c.Get("X-Signature-Timestamp")
		if timestamp == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid request signature"})
		}

		msg := append([]byte(timestamp), c.Body()...)
		if !ed25519.Verify(ed25519.PublicKey(pubKey), msg, sig) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid request signature"})
		}

		return c.Next()
	}
}
