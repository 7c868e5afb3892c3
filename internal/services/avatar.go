package services

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"image/color"
	"strings"
	"unicode"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"

	"github.com/yungbote/lingo-backend/internal/data/repos"
	"github.com/yungbote/lingo-backend/internal/platform/apierr"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
)

const avatarSize = 256

var avatarPalette = []color.NRGBA{
	{R: 0x58, G: 0xCC, B: 0x02, A: 0xFF},
	{R: 0x1C, G: 0xB0, B: 0xF6, A: 0xFF},
	{R: 0xFF, G: 0x96, B: 0x00, A: 0xFF},
	{R: 0xCE, G: 0x82, B: 0xFF, A: 0xFF},
	{R: 0xFF, G: 0x4B, B: 0x4B, A: 0xFF},
	{R: 0x2B, G: 0x70, B: 0xC9, A: 0xFF},
}

// AvatarService renders initials avatars for users who have no uploaded image.
type AvatarService interface {
	GenerateUserAvatar(ctx context.Context, userID uuid.UUID) ([]byte, error)
}

type avatarService struct {
	log      *logger.Logger
	progress repos.UserProgressRepo
	fontFace font.Face
}

func NewAvatarService(log *logger.Logger, progress repos.UserProgressRepo) (AvatarService, error) {
	serviceLog := log.With("service", "AvatarService")
	face, err := loadFontFace(gobold.TTF, avatarSize*0.4)
	if err != nil {
		return nil, fmt.Errorf("could not load avatar font: %w", err)
	}
	return &avatarService{log: serviceLog, progress: progress, fontFace: face}, nil
}

func (as *avatarService) GenerateUserAvatar(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	up, err := as.progress.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if up == nil {
		return nil, apierr.NotFound(errNotFound("user"))
	}
	buf, err := as.render(computeInitials(up.UserName), pickColor(userID))
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (as *avatarService) render(initials string, bg color.NRGBA) (bytes.Buffer, error) {
	dc := gg.NewContext(avatarSize, avatarSize)

	dc.DrawCircle(avatarSize/2, avatarSize/2, avatarSize/2)
	dc.Clip()

	dc.SetColor(bg)
	dc.DrawRectangle(0, 0, avatarSize, avatarSize)
	dc.Fill()

	dc.SetFontFace(as.fontFace)
	dc.SetColor(color.White)
	dc.DrawStringAnchored(initials, avatarSize/2, avatarSize/2, 0.5, 0.35)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf, nil
}

// pickColor is stable per user so the avatar does not change between requests.
func pickColor(userID uuid.UUID) color.NRGBA {
	h := fnv.New32a()
	_, _ = h.Write(userID[:])
	return avatarPalette[int(h.Sum32()%uint32(len(avatarPalette)))]
}

// computeInitials takes the first letter of the first two words of name.
func computeInitials(name string) string {
	var out []rune
	for _, word := range strings.Fields(name) {
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				out = append(out, unicode.ToUpper(r))
				break
			}
		}
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return string(out)
}

func loadFontFace(ttf []byte, size float64) (font.Face, error) {
	parsedFont, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	return truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}
