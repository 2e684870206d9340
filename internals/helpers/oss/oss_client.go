package helper

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

var (
	// guard ringan ukuran upload (controller juga membatasi)
	maxUploadSize = int64(10 * 1024 * 1024)
)

/* =======================================================================
   Konversi WebP (dokumen bertipe image: portfolio shots dsb.)
======================================================================= */

const (
	webpMaxW    = 1600
	webpMaxH    = 1600
	webpQuality = float32(80)
)

// ConvertToWebP: decode jpg/png/webp → downscale keep-aspect → encode webp lossy.
func ConvertToWebP(file multipart.File, filename string) ([]byte, error) {
	all, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("baca file: %w", err)
	}
	if int64(len(all)) > maxUploadSize {
		return nil, fmt.Errorf("file terlalu besar (max %d bytes)", maxUploadSize)
	}

	img, _, err := image.Decode(bytes.NewReader(all))
	if err != nil {
		// coba webp (stdlib tidak punya decoder webp)
		if wimg, werr := webp.Decode(bytes.NewReader(all)); werr == nil {
			img = wimg
		} else {
			return nil, fmt.Errorf("format tidak didukung (%s): %w", filepath.Ext(filename), err)
		}
	}

	b := img.Bounds()
	if b.Dx() > webpMaxW || b.Dy() > webpMaxH {
		img = imaging.Fit(img, webpMaxW, webpMaxH, imaging.Lanczos)
	}

	var out bytes.Buffer
	if err := webp.Encode(&out, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return out.Bytes(), nil
}

/* =======================================================================
   OSS Service
======================================================================= */

type OSSService struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string // optional: "documents/"
}

func NewOSSServiceFromEnv(prefix string) (*OSSService, error) {
	endpoint := getEnv("ALI_OSS_ENDPOINT")
	ak := getEnv("ALI_OSS_ACCESS_KEY")
	sk := getEnv("ALI_OSS_SECRET_KEY")
	bucketName := getEnv("ALI_OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	client, err := oss.New(endpoint, ak, sk)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	return &OSSService{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		Prefix:     strings.Trim(prefix, "/"),
	}, nil
}

/* =======================================================================
   Upload helpers
======================================================================= */

// UploadAsWebP: recompress image ke webp lalu upload <dir>/<key>.webp
func (s *OSSService) UploadAsWebP(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", fmt.Errorf("nil file header")
	}
	if fh.Size > maxUploadSize {
		return "", fmt.Errorf("file too large (max %d bytes)", maxUploadSize)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	webpData, err := ConvertToWebP(src, fh.Filename)
	if err != nil {
		return "", err
	}

	base := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))
	key := s.buildObjectKey(dir, base+".webp")

	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType("image/webp"),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := s.Bucket.PutObject(key, bytes.NewReader(webpData), opts...); err != nil {
		return "", err
	}
	return key, nil
}

// UploadRaw: upload apa adanya (pdf dsb.), return objectKey + contentType.
func (s *OSSService) UploadRaw(ctx context.Context, dir string, fh *multipart.FileHeader) (string, string, error) {
	if fh == nil {
		return "", "", fmt.Errorf("nil file header")
	}
	if fh.Size > maxUploadSize {
		return "", "", fmt.Errorf("file too large (max %d bytes)", maxUploadSize)
	}

	src, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	ct, reader, err := detectContentType(src, fh.Filename)
	if err != nil {
		return "", "", err
	}

	key := s.buildObjectKey(dir, fh.Filename)
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(ct),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := s.Bucket.PutObject(key, reader, opts...); err != nil {
		return "", "", err
	}
	return key, ct, nil
}

/* =======================================================================
   Delete / move-to-spam
======================================================================= */

// MoveToSpam: copy object ke prefix spam/ lalu hapus aslinya.
// Reaper cron yang akan purge spam/ sesudah retention.
func (s *OSSService) MoveToSpam(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty object key")
	}
	spamKey := "spam/" + time.Now().UTC().Format("20060102") + "/" + key
	if _, err := s.Bucket.CopyObject(key, spamKey, oss.WithContext(ctx)); err != nil {
		return "", fmt.Errorf("copy to spam: %w", err)
	}
	if err := s.Bucket.DeleteObject(key, oss.WithContext(ctx)); err != nil {
		log.Printf("[WARNING] hapus object asli gagal (sudah tercopy ke spam): %v", err)
	}
	return spamKey, nil
}

func (s *OSSService) DeleteObject(ctx context.Context, key string) error {
	return s.Bucket.DeleteObject(key, oss.WithContext(ctx))
}

/* =======================================================================
   Key & URL
======================================================================= */

func (s *OSSService) PublicURL(key string) string {
	ep := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, ep, key)
}

func ExtractKeyFromPublicURL(publicURL string) (string, error) {
	i := strings.Index(publicURL, "://")
	if i < 0 {
		return "", fmt.Errorf("bukan URL: %q", publicURL)
	}
	rest := publicURL[i+3:]
	j := strings.Index(rest, "/")
	if j < 0 || j == len(rest)-1 {
		return "", fmt.Errorf("URL tanpa object key: %q", publicURL)
	}
	return rest[j+1:], nil
}

func (s *OSSService) buildObjectKey(dir, filename string) string {
	base := slugify(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	ext := strings.ToLower(filepath.Ext(filename))
	name := fmt.Sprintf("%s-%s%s", base, randHex(6), ext)

	parts := []string{}
	if s.Prefix != "" {
		parts = append(parts, s.Prefix)
	}
	if d := strings.Trim(dir, "/"); d != "" {
		parts = append(parts, d)
	}
	parts = append(parts, name)
	return strings.Join(parts, "/")
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		out = "file"
	}
	return out
}

func randHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

func detectContentType(src multipart.File, filename string) (string, io.Reader, error) {
	head := make([]byte, 512)
	n, err := src.Read(head)
	if err != nil && err != io.EOF {
		return "", nil, fmt.Errorf("sniff content-type: %w", err)
	}
	ct := http.DetectContentType(head[:n])
	if ct == "application/octet-stream" {
		if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); byExt != "" {
			ct = byExt
		}
	}
	return ct, io.MultiReader(bytes.NewReader(head[:n]), src), nil
}
