package ipixel

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

func (p *Panel) send(cmd []byte) error {
	start := time.Now()
	if err := p.tr.Write(cmd); err != nil {
		return err
	}
	cost := time.Since(start)

	ext := ""
	if len(cmd) <= 16 {
		ext = fmt.Sprintf("%x", cmd)
	}

	p.logger.With(
		zap.Int("sent", len(cmd)),
		zap.String("cost", cost.String()),
		zap.String("data", ext),
	).Debug("transfer")

	return nil
}

func (p *Panel) onNotify(data []byte) {
	p.logger.With(zap.String("data", fmt.Sprintf("%x", data))).Debug("notify")
}
