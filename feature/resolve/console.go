package resolve

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"nutrient-sync/core/errors"
	"nutrient-sync/core/models"

	"go.uber.org/zap"
)

// Console prompts an operator on a terminal. Prompts from concurrent pipelines
// are serialized: one pipeline owns the input until its answer is complete.
type Console struct {
	mu     sync.Mutex
	in     *bufio.Reader
	out    io.Writer
	logger *zap.Logger
}

// NewConsole creates a console prompter reading from in and writing prompts to out.
func NewConsole(in io.Reader, out io.Writer, logger *zap.Logger) *Console {
	return &Console{
		in:     bufio.NewReader(in),
		out:    out,
		logger: logger,
	}
}

// Prompt asks for the FDC ID of food until a valid id or an empty line is entered.
// An empty line or end of input skips the food.
func (c *Console) Prompt(ctx context.Context, food *models.Food) (int, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for {
		if err := ctx.Err(); err != nil {
			return 0, false, err
		}

		if _, err := fmt.Fprintf(c.out, "No FDC ID found for %q (id %d). Enter an FDC ID or leave empty to skip: ", food.Name, food.ID); err != nil {
			return 0, false, err
		}

		line, err := c.in.ReadString('\n')
		if err != nil && err != io.EOF {
			return 0, false, err
		}
		input := strings.TrimSpace(line)

		if input == "" {
			return 0, false, nil
		}

		id, parseErr := ParseID(input)
		if parseErr == nil {
			return id, true, nil
		}

		c.logger.Debug("Rejected console input", zap.Error(parseErr))
		_, _ = fmt.Fprintf(c.out, "%v\n", parseErr)

		if err == io.EOF {
			return 0, false, nil
		}
	}
}

// ParseID parses operator input as a non-negative FDC ID.
func ParseID(input string) (int, error) {
	id, err := strconv.Atoi(input)
	if err != nil {
		return 0, &errors.InputError{Input: input, Message: "not a number"}
	}
	if id < 0 {
		return 0, &errors.InputError{Input: input, Message: "must not be negative"}
	}
	return id, nil
}
