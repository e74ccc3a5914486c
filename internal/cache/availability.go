package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// AvailabilityCache guarda o resultado do cálculo de slots por
// (barbeiro, serviço, data) com TTL curto. Invalidação por versão:
// cada escrita no dia do barbeiro incrementa um contador que entra na
// chave, então nunca servimos slots de antes da escrita — sem SCAN.
//
// O re-check otimista do Reservation Writer NÃO passa por aqui; ele
// sempre relê o banco.
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailabilityCache(rdb *redis.Client) *AvailabilityCache {
	return &AvailabilityCache{
		rdb: rdb,
		ttl: 30 * time.Second,
	}
}

func (c *AvailabilityCache) Enabled() bool {
	return c != nil && c.rdb != nil
}

func versionKey(barberID uint, date string) string {
	return fmt.Sprintf("avail:ver:%d:%s", barberID, date)
}

// Versão do barbeiro inteiro: muda quando o expediente muda e derruba o
// cache de TODAS as datas daquele barbeiro de uma vez.
func barberVersionKey(barberID uint) string {
	return fmt.Sprintf("avail:bver:%d", barberID)
}

// slotsKeyFor compõe a chave final; as duas versões fazem parte dela,
// então qualquer bump torna as entradas antigas inalcançáveis.
func slotsKeyFor(barberID, serviceID uint, date string, barberVer, dayVer int64) string {
	return fmt.Sprintf("avail:slots:%d:%d:%s:v%d.%d", barberID, serviceID, date, barberVer, dayVer)
}

func (c *AvailabilityCache) version(ctx context.Context, key string) int64 {
	ver, err := c.rdb.Get(ctx, key).Int64()
	if err != nil {
		return 0
	}
	return ver
}

func (c *AvailabilityCache) slotsKey(ctx context.Context, barberID, serviceID uint, date string) string {
	barberVer := c.version(ctx, barberVersionKey(barberID))
	dayVer := c.version(ctx, versionKey(barberID, date))
	return slotsKeyFor(barberID, serviceID, date, barberVer, dayVer)
}

// Get devolve (slots, true) no hit. Qualquer erro de Redis vira miss.
func (c *AvailabilityCache) Get(ctx context.Context, barberID, serviceID uint, date string) ([]string, bool) {
	if !c.Enabled() {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, c.slotsKey(ctx, barberID, serviceID, date)).Bytes()
	if err != nil {
		return nil, false
	}

	var slots []string
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *AvailabilityCache) Set(ctx context.Context, barberID, serviceID uint, date string, slots []string) {
	if !c.Enabled() {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	c.rdb.Set(ctx, c.slotsKey(ctx, barberID, serviceID, date), raw, c.ttl)
}

// Invalidate descarta todo slot cacheado do barbeiro+data, para
// qualquer serviço. Chamado após criar/cancelar agendamento.
func (c *AvailabilityCache) Invalidate(ctx context.Context, barberID uint, date string) {
	if !c.Enabled() {
		return
	}

	key := versionKey(barberID, date)
	c.rdb.Incr(ctx, key)
	c.rdb.Expire(ctx, key, 24*time.Hour)
}

// InvalidateBarber descarta o cache de todas as datas do barbeiro.
// Chamado quando o expediente dele muda.
func (c *AvailabilityCache) InvalidateBarber(ctx context.Context, barberID uint) {
	if !c.Enabled() {
		return
	}

	key := barberVersionKey(barberID)
	c.rdb.Incr(ctx, key)
	c.rdb.Expire(ctx, key, 24*time.Hour)
}
