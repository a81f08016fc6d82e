package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Bhaskar125/macro-tracking-webapp/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SNSAPI is the part of the SNS client the push service uses.
type SNSAPI interface {
	CreatePlatformEndpoint(ctx context.Context, in *awssns.CreatePlatformEndpointInput, opts ...func(*awssns.Options)) (*awssns.CreatePlatformEndpointOutput, error)
	Publish(ctx context.Context, in *awssns.PublishInput, opts ...func(*awssns.Options)) (*awssns.PublishOutput, error)
}

type PushService struct {
	db             *gorm.DB
	sns            SNSAPI
	fcmPlatformArn string
	log            logrus.FieldLogger
}

// NewPushService wires push delivery. sns may be nil, in which case devices
// can still be toggled but nothing is registered or sent.
func NewPushService(db *gorm.DB, sns SNSAPI, fcmPlatformArn string, log logrus.FieldLogger) *PushService {
	return &PushService{db: db, sns: sns, fcmPlatformArn: fcmPlatformArn, log: log}
}

// NewSNSClient builds the SNS client for NewPushService.
func NewSNSClient(cfg aws.Config) *awssns.Client { return awssns.NewFromConfig(cfg) }

var ErrPushUnavailable = errors.New("push notifications are not configured")

type RegisterDeviceReq struct {
	Platform string `json:"platform" binding:"required"` // "android" | "ios"
	Token    string `json:"token" binding:"required"`
}

func tokenHash(tok string) string {
	h := sha256.Sum256([]byte(tok))
	return hex.EncodeToString(h[:])
}

func (p *PushService) platformArn(platform string) (string, error) {
	switch strings.ToLower(platform) {
	case "android", "ios":
		if p.fcmPlatformArn == "" {
			return "", ErrPushUnavailable
		}
		return p.fcmPlatformArn, nil
	default:
		return "", invalid("unknown platform %q", platform)
	}
}

// RegisterDevice creates (or refreshes) the SNS endpoint for a device token.
// A token is stored only as its hash.
func (p *PushService) RegisterDevice(ctx context.Context, userID uint, platform, token string) (*models.UserDevice, error) {
	if strings.TrimSpace(token) == "" {
		return nil, invalid("device token is required")
	}
	appArn, err := p.platformArn(platform)
	if err != nil {
		return nil, err
	}
	if p.sns == nil {
		return nil, ErrPushUnavailable
	}

	out, err := p.sns.CreatePlatformEndpoint(ctx, &awssns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(appArn),
		Token:                  aws.String(token),
	})
	if err != nil {
		return nil, fmt.Errorf("create platform endpoint: %w", err)
	}

	dev := models.UserDevice{}
	hash := tokenHash(token)
	err = p.db.WithContext(ctx).Where("user_id = ? AND token_hash = ?", userID, hash).First(&dev).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, dbError(err, "load device")
	}
	dev.UserID = userID
	dev.TokenHash = hash
	dev.Platform = strings.ToLower(platform)
	dev.EndpointARN = aws.ToString(out.EndpointArn)
	dev.Enabled = true
	dev.UpdatedAt = time.Now()
	if err := p.db.WithContext(ctx).Save(&dev).Error; err != nil {
		return nil, dbError(err, "save device")
	}
	return &dev, nil
}

// SetEnabled turns notifications on or off for all of the user's devices.
func (p *PushService) SetEnabled(ctx context.Context, userID uint, enabled bool) (int64, error) {
	res := p.db.WithContext(ctx).Model(&models.UserDevice{}).
		Where("user_id = ?", userID).
		Update("enabled", enabled)
	if res.Error != nil {
		return 0, dbError(res.Error, "toggle notifications")
	}
	return res.RowsAffected, nil
}

func (p *PushService) PushToUser(ctx context.Context, userID uint, title, body string, data map[string]string) {
	if p.sns == nil {
		return
	}
	var endpoints []models.UserDevice
	if err := p.db.WithContext(ctx).Where("user_id = ? AND enabled = ?", userID, true).Find(&endpoints).Error; err != nil {
		p.log.WithError(err).Warn("load push endpoints")
		return
	}
	if len(endpoints) == 0 {
		return
	}

	gcm, _ := json.Marshal(map[string]any{
		"notification": map[string]string{
			"title": title,
			"body":  body,
		},
		"data": data,
	})
	raw, _ := json.Marshal(map[string]string{
		"default": body,
		"GCM":     string(gcm),
	})
	for _, d := range endpoints {
		if _, err := p.sns.Publish(ctx, &awssns.PublishInput{
			MessageStructure: aws.String("json"),
			Message:          aws.String(string(raw)),
			TargetArn:        aws.String(d.EndpointARN),
		}); err != nil {
			p.log.WithError(err).WithField("device_id", d.ID).Warn("push notification")
		}
	}
}
