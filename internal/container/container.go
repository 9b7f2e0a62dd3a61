// Package container holds the app-level singletons shared across
// packages. The router auto-wires feature modules from these.
package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/devtrails/campdirect/config"
	"github.com/devtrails/campdirect/pkg/credentials"
	"github.com/devtrails/campdirect/pkg/geocode"
	"github.com/devtrails/campdirect/pkg/helpers"
	"github.com/devtrails/campdirect/pkg/mailer"
)

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	gcsClient   *storage.Client
	esClient    *elasticsearch.Client

	tokens   *credentials.TokenManager
	cookies  *helpers.CookieManager
	geocoder geocode.Geocoder

	mailSender mailer.Sender
	rabbitPub  *helpers.RabbitPublisher
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }

func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }

func SetPGPool(p *pgxpool.Pool) { pgPool = p }
func GetPGPool() *pgxpool.Pool  { return pgPool }

func SetRedis(r *redis.Client) { redisClient = r }
func GetRedis() *redis.Client  { return redisClient }

func SetGCS(s *storage.Client) { gcsClient = s }
func GetGCS() *storage.Client  { return gcsClient }

func SetES(c *elasticsearch.Client) { esClient = c }
func GetES() *elasticsearch.Client  { return esClient }

func SetTokens(m *credentials.TokenManager) { tokens = m }
func GetTokens() *credentials.TokenManager  { return tokens }

func SetCookies(m *helpers.CookieManager) { cookies = m }
func GetCookies() *helpers.CookieManager  { return cookies }

func SetGeocoder(g geocode.Geocoder) { geocoder = g }
func GetGeocoder() geocode.Geocoder  { return geocoder }

func SetMailSender(m mailer.Sender) { mailSender = m }
func GetMailSender() mailer.Sender  { return mailSender }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
